// Package ident mints temporary record identifiers for records created
// before the remote store has assigned them a row id. Tokens are unique
// within (and beyond) a session and can never collide with the numeric
// server identifier space.
package ident

import (
	"github.com/google/uuid"

	"github.com/adityarawat/prepometer/internal/models"
)

// NewTemporary returns a fresh temporary record id.
func NewTemporary() models.RecordID {
	return models.TemporaryID("tmp-" + uuid.NewString())
}
