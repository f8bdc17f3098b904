package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/adityarawat/prepometer/internal/auth"
	"github.com/adityarawat/prepometer/internal/config"
	"github.com/adityarawat/prepometer/internal/models"
	"github.com/adityarawat/prepometer/internal/storage"
	"github.com/adityarawat/prepometer/internal/sync"
)

// Context carries the wired application services into command Run methods.
// Session and RemoteDB are nil when no remote backend is configured.
type Context struct {
	Config     *config.Config
	Store      storage.Provider
	Reconciler *sync.Reconciler
	Session    *auth.Session
	RemoteDB   *sql.DB
}

func (c *Context) requireSession() (models.Identity, error) {
	if c.Session == nil {
		return models.Identity{}, fmt.Errorf("no remote backend configured (set remote.dsn in config)")
	}
	id := c.Session.Current()
	if id.IsZero() {
		return models.Identity{}, fmt.Errorf("not signed in (run 'prepometer login')")
	}
	return id, nil
}

func parseSubject(s string) (models.Subject, error) {
	subject, ok := models.ParseSubject(s)
	if !ok {
		var names []string
		for _, sub := range models.Subjects {
			names = append(names, string(sub))
		}
		return "", fmt.Errorf("unknown subject %q (one of: %s)", s, strings.Join(names, ", "))
	}
	return subject, nil
}

func statusLabel(item models.ChecklistItem) string {
	if item.IsDone() {
		return "x"
	}
	if strings.EqualFold(item.Status, models.StatusInProgress) {
		return "~"
	}
	return " "
}
