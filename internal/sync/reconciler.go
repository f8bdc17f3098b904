package sync

import (
	"context"
	"fmt"
	"sync"

	"github.com/adityarawat/prepometer/internal/auth"
	"github.com/adityarawat/prepometer/internal/ident"
	"github.com/adityarawat/prepometer/internal/logger"
	"github.com/adityarawat/prepometer/internal/models"
	"github.com/adityarawat/prepometer/internal/remote"
	"github.com/adityarawat/prepometer/internal/storage"
)

// State is the reconciler's session state.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Reconciler owns the in-memory collections and keeps them consistent with
// local storage (always) and the remote store (while authenticated).
// Methods are safe for concurrent use; remote pushes run asynchronously and
// the last gateway response to arrive wins, which is acceptable at human
// pace.
type Reconciler struct {
	store   storage.Provider
	gateway remote.Gateway

	mu        sync.Mutex
	state     State
	identity  models.Identity
	checklist []models.ChecklistItem
	dailyLog  []models.DailyLogEntry

	// pushes tracks in-flight remote calls so callers can drain them
	// before process exit. A sign-out does not cancel them; each push
	// captured its identity when it was issued.
	pushes sync.WaitGroup
}

// New builds a reconciler over the local store. The gateway may be nil when
// no remote is configured; the reconciler then never leaves the anonymous
// state.
func New(store storage.Provider, gateway remote.Gateway) *Reconciler {
	r := &Reconciler{
		store:   store,
		gateway: gateway,
		state:   Anonymous,
	}
	r.checklist = store.LoadChecklist()
	r.dailyLog = store.LoadDailyLog()
	return r
}

// State returns the current session state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Identity returns the identity pushes are issued under, zero when anonymous.
func (r *Reconciler) Identity() models.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identity
}

// Checklist returns a copy of the in-memory checklist.
func (r *Reconciler) Checklist() []models.ChecklistItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ChecklistItem, len(r.checklist))
	copy(out, r.checklist)
	return out
}

// DailyLog returns a copy of the in-memory daily log.
func (r *Reconciler) DailyLog() []models.DailyLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.DailyLogEntry, len(r.dailyLog))
	copy(out, r.dailyLog)
	return out
}

// Wait drains in-flight remote pushes. Call before process exit so
// fire-and-forget calls get their chance to land.
func (r *Reconciler) Wait() {
	r.pushes.Wait()
}

// BeginAuth marks the start of a session check or sign-in flow.
func (r *Reconciler) BeginAuth() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Anonymous {
		r.state = Authenticating
	}
}

// FailAuth records that no session was found; local collections are used
// as-is and no remote calls are made.
func (r *Reconciler) FailAuth() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Anonymous
	r.identity = models.Identity{}
}

// CompleteAuth transitions to the authenticated state and pulls remote
// state down. For each collection the remote copy replaces the local one
// unless the remote copy is empty, in which case local (possibly
// offline-created) data is preserved untouched.
func (r *Reconciler) CompleteAuth(ctx context.Context, id models.Identity) error {
	if id.IsZero() {
		return fmt.Errorf("cannot authenticate with an empty identity")
	}
	r.mu.Lock()
	r.state = Authenticated
	r.identity = id
	r.mu.Unlock()

	if r.gateway == nil {
		return nil
	}
	return r.pull(ctx, id)
}

// SignOut returns to the anonymous state. Local collections are retained
// unchanged and no further remote calls are issued until the next sign-in.
func (r *Reconciler) SignOut() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Anonymous
	r.identity = models.Identity{}
}

// Pull re-fetches remote state on demand, applying the same merge policy
// as sign-in.
func (r *Reconciler) Pull(ctx context.Context) error {
	r.mu.Lock()
	id, authed := r.identity, r.state == Authenticated
	r.mu.Unlock()
	if !authed {
		return fmt.Errorf("pull requires an active session")
	}
	if r.gateway == nil {
		return fmt.Errorf("no remote store configured")
	}
	return r.pull(ctx, id)
}

// Watch consumes session events until ctx is cancelled, driving the state
// machine from the auth service's notification stream.
func (r *Reconciler) Watch(ctx context.Context, events <-chan auth.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Identity.IsZero() {
				r.SignOut()
				continue
			}
			r.BeginAuth()
			if err := r.CompleteAuth(ctx, ev.Identity); err != nil {
				logger.Warn("Pull after sign-in failed", "error", err)
			}
		}
	}
}

// pull fetches both remote collections. A failed select leaves the local
// collection standing and is reported back; callers treat it as non-fatal.
func (r *Reconciler) pull(ctx context.Context, id models.Identity) error {
	var firstErr error

	remoteItems, err := r.gateway.SelectChecklist(ctx, id.UserID)
	if err != nil {
		logger.Warn("Failed to pull remote checklist", "error", err)
		firstErr = err
	} else if len(remoteItems) > 0 {
		r.mu.Lock()
		r.checklist = remoteItems
		r.mu.Unlock()
		if err := r.store.SaveChecklist(remoteItems); err != nil {
			logger.Warn("Failed to persist pulled checklist", "error", err)
		}
	}

	remoteLogs, err := r.gateway.SelectDailyLog(ctx, id.UserID)
	if err != nil {
		logger.Warn("Failed to pull remote daily log", "error", err)
		if firstErr == nil {
			firstErr = err
		}
		return firstErr
	}
	if len(remoteLogs) > 0 {
		r.mu.Lock()
		r.dailyLog = remoteLogs
		r.mu.Unlock()
		if err := r.store.SaveDailyLog(remoteLogs); err != nil {
			logger.Warn("Failed to persist pulled daily log", "error", err)
		}
	}
	return firstErr
}

// AddItem creates a checklist item locally with a temporary id and, while
// authenticated, pushes an insert whose returned server id is reconciled
// back onto the record.
func (r *Reconciler) AddItem(item models.ChecklistItem) (models.ChecklistItem, error) {
	if item.Topic == "" {
		return models.ChecklistItem{}, fmt.Errorf("topic is required")
	}
	if _, ok := models.ParseSubject(string(item.Subject)); !ok {
		return models.ChecklistItem{}, fmt.Errorf("unknown subject: %s", item.Subject)
	}
	if item.Status == "" {
		item.Status = models.StatusNotStarted
	}
	item.ID = ident.NewTemporary()

	r.mu.Lock()
	r.checklist = append(r.checklist, item)
	snapshot := r.snapshotChecklistLocked()
	id, authed := r.identity, r.state == Authenticated
	r.mu.Unlock()

	if err := r.store.SaveChecklist(snapshot); err != nil {
		return item, err
	}

	if authed && r.gateway != nil {
		r.pushInsertItem(id, item)
	}
	return item, nil
}

// UpdateItem applies a mutation to the item with the given id and pushes it
// remotely while authenticated. An update to a record still holding a
// temporary id is promoted to an insert, since no remote row exists yet.
func (r *Reconciler) UpdateItem(recordID models.RecordID, patch func(*models.ChecklistItem)) (models.ChecklistItem, error) {
	r.mu.Lock()
	idx := r.findItemLocked(recordID)
	if idx < 0 {
		r.mu.Unlock()
		return models.ChecklistItem{}, fmt.Errorf("checklist item not found: %s", recordID)
	}
	patch(&r.checklist[idx])
	r.checklist[idx].ID = recordID // identity is not patchable
	item := r.checklist[idx]
	snapshot := r.snapshotChecklistLocked()
	id, authed := r.identity, r.state == Authenticated
	r.mu.Unlock()

	if err := r.store.SaveChecklist(snapshot); err != nil {
		return item, err
	}

	if authed && r.gateway != nil {
		if recordID.IsTemporary() {
			r.pushInsertItem(id, item)
		} else {
			r.pushUpdateItem(id, item)
		}
	}
	return item, nil
}

// DeleteItem removes the item locally. A remote delete is issued only for
// records that already hold a server id; items that never reached the
// remote store have no row to delete.
func (r *Reconciler) DeleteItem(recordID models.RecordID) error {
	r.mu.Lock()
	idx := r.findItemLocked(recordID)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("checklist item not found: %s", recordID)
	}
	r.checklist = append(r.checklist[:idx], r.checklist[idx+1:]...)
	snapshot := r.snapshotChecklistLocked()
	id, authed := r.identity, r.state == Authenticated
	r.mu.Unlock()

	if err := r.store.SaveChecklist(snapshot); err != nil {
		return err
	}

	if authed && r.gateway != nil && recordID.IsPersisted() {
		serverID := recordID.ServerID()
		r.push(func(ctx context.Context) {
			if err := r.gateway.DeleteChecklist(ctx, id.UserID, serverID); err != nil {
				logger.Warn("Remote delete failed", "id", serverID, "error", err)
			}
		})
	}
	return nil
}

// AddLogEntry appends a daily log entry locally and pushes an insert while
// authenticated. Duplicate dates are allowed.
func (r *Reconciler) AddLogEntry(entry models.DailyLogEntry) (models.DailyLogEntry, error) {
	if err := entry.Validate(); err != nil {
		return models.DailyLogEntry{}, err
	}
	entry.ID = ident.NewTemporary()

	r.mu.Lock()
	r.dailyLog = append(r.dailyLog, entry)
	snapshot := r.snapshotDailyLogLocked()
	id, authed := r.identity, r.state == Authenticated
	r.mu.Unlock()

	if err := r.store.SaveDailyLog(snapshot); err != nil {
		return entry, err
	}

	if authed && r.gateway != nil {
		r.pushInsertLog(id, entry)
	}
	return entry, nil
}

// ImportAll pushes every local record to the remote store as new rows,
// unconditionally. It does not check for existing remote duplicates, so
// running it twice duplicates data remotely; that is the documented
// behavior, not a bug to paper over. Returned server ids are reconciled
// onto the local records.
func (r *Reconciler) ImportAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	if r.state != Authenticated {
		r.mu.Unlock()
		return 0, fmt.Errorf("bulk import requires an active session")
	}
	id := r.identity
	items := r.snapshotChecklistLocked()
	entries := r.snapshotDailyLogLocked()
	r.mu.Unlock()

	if r.gateway == nil {
		return 0, fmt.Errorf("no remote store configured")
	}

	var pushed int
	for _, item := range items {
		serverID, err := r.gateway.InsertChecklist(ctx, id.UserID, item)
		if err != nil {
			logger.Warn("Bulk import: checklist insert failed", "topic", item.Topic, "error", err)
			continue
		}
		r.adoptItemID(item.ID, serverID)
		pushed++
	}
	for _, entry := range entries {
		serverID, err := r.gateway.InsertDailyLog(ctx, id.UserID, entry)
		if err != nil {
			logger.Warn("Bulk import: daily log insert failed", "date", entry.Date, "error", err)
			continue
		}
		r.adoptLogID(entry.ID, serverID)
		pushed++
	}

	r.persistBoth()
	logger.Info("Bulk import complete", "records", pushed)
	return pushed, nil
}

// push runs fn asynchronously on a background context, detached from the
// caller's lifetime: a sign-out or command exit does not cancel an issued
// call, it runs to completion against the identity captured at issue time.
func (r *Reconciler) push(fn func(context.Context)) {
	r.pushes.Add(1)
	go func() {
		defer r.pushes.Done()
		fn(context.Background())
	}()
}

func (r *Reconciler) pushInsertItem(id models.Identity, item models.ChecklistItem) {
	r.push(func(ctx context.Context) {
		serverID, err := r.gateway.InsertChecklist(ctx, id.UserID, item)
		if err != nil {
			logger.Warn("Remote insert failed", "topic", item.Topic, "error", err)
			return
		}
		r.adoptItemID(item.ID, serverID)
		r.persistChecklist()
	})
}

func (r *Reconciler) pushUpdateItem(id models.Identity, item models.ChecklistItem) {
	r.push(func(ctx context.Context) {
		if err := r.gateway.UpdateChecklist(ctx, id.UserID, item); err != nil {
			logger.Warn("Remote update failed", "topic", item.Topic, "error", err)
		}
	})
}

func (r *Reconciler) pushInsertLog(id models.Identity, entry models.DailyLogEntry) {
	r.push(func(ctx context.Context) {
		serverID, err := r.gateway.InsertDailyLog(ctx, id.UserID, entry)
		if err != nil {
			logger.Warn("Remote insert failed", "date", entry.Date, "error", err)
			return
		}
		r.adoptLogID(entry.ID, serverID)
		r.persistDailyLog()
	})
}

// adoptItemID promotes the record matched by its previous id to the
// server-assigned id, in place. The record keeps its position and fields.
func (r *Reconciler) adoptItemID(prev models.RecordID, serverID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.checklist {
		if r.checklist[i].ID == prev {
			r.checklist[i].ID = models.PersistedID(serverID)
			return
		}
	}
	// Record was deleted or replaced while the insert was in flight;
	// nothing to promote.
}

func (r *Reconciler) adoptLogID(prev models.RecordID, serverID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.dailyLog {
		if r.dailyLog[i].ID == prev {
			r.dailyLog[i].ID = models.PersistedID(serverID)
			return
		}
	}
}

func (r *Reconciler) persistChecklist() {
	r.mu.Lock()
	snapshot := r.snapshotChecklistLocked()
	r.mu.Unlock()
	if err := r.store.SaveChecklist(snapshot); err != nil {
		logger.Warn("Failed to persist checklist", "error", err)
	}
}

func (r *Reconciler) persistDailyLog() {
	r.mu.Lock()
	snapshot := r.snapshotDailyLogLocked()
	r.mu.Unlock()
	if err := r.store.SaveDailyLog(snapshot); err != nil {
		logger.Warn("Failed to persist daily log", "error", err)
	}
}

func (r *Reconciler) persistBoth() {
	r.persistChecklist()
	r.persistDailyLog()
}

func (r *Reconciler) findItemLocked(id models.RecordID) int {
	for i := range r.checklist {
		if r.checklist[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Reconciler) snapshotChecklistLocked() []models.ChecklistItem {
	out := make([]models.ChecklistItem, len(r.checklist))
	copy(out, r.checklist)
	return out
}

func (r *Reconciler) snapshotDailyLogLocked() []models.DailyLogEntry {
	out := make([]models.DailyLogEntry, len(r.dailyLog))
	copy(out, r.dailyLog)
	return out
}
