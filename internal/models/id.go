package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RecordID identifies a checklist item or daily log entry. A record created
// locally carries a temporary client token until the remote store assigns it
// a numeric row id; the two identifier spaces are disjoint and every branch
// that cares about the difference switches on IsPersisted rather than
// sniffing the underlying value.
type RecordID struct {
	token    string
	serverID int64
}

// TemporaryID wraps a client-generated token.
func TemporaryID(token string) RecordID {
	return RecordID{token: token}
}

// PersistedID wraps a server-assigned numeric row id.
func PersistedID(id int64) RecordID {
	return RecordID{serverID: id}
}

// IsZero reports whether the id has not been assigned at all.
func (id RecordID) IsZero() bool {
	return id.token == "" && id.serverID == 0
}

// IsTemporary reports whether the record only exists locally.
func (id RecordID) IsTemporary() bool {
	return id.token != ""
}

// IsPersisted reports whether the record has a server-assigned row id.
func (id RecordID) IsPersisted() bool {
	return id.token == "" && id.serverID != 0
}

// ServerID returns the numeric row id. It is only meaningful when
// IsPersisted is true.
func (id RecordID) ServerID() int64 {
	return id.serverID
}

// Token returns the temporary client token, or "" for persisted ids.
func (id RecordID) Token() string {
	return id.token
}

func (id RecordID) String() string {
	if id.IsTemporary() {
		return id.token
	}
	if id.IsPersisted() {
		return strconv.FormatInt(id.serverID, 10)
	}
	return ""
}

// ParseRecordID turns a user-supplied identifier back into a RecordID.
// Plain integers address persisted rows, anything else is treated as a
// temporary token.
func ParseRecordID(s string) (RecordID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RecordID{}, fmt.Errorf("empty record id")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return PersistedID(n), nil
	}
	return TemporaryID(s), nil
}

// MarshalJSON keeps the historical wire shape: persisted ids serialize as
// JSON numbers, temporary tokens as strings.
func (id RecordID) MarshalJSON() ([]byte, error) {
	if id.IsTemporary() {
		return json.Marshal(id.token)
	}
	if id.IsPersisted() {
		return json.Marshal(id.serverID)
	}
	return []byte("null"), nil
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*id = RecordID{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var token string
		if err := json.Unmarshal(data, &token); err != nil {
			return err
		}
		// Older exports stored server ids as strings
		if n, err := strconv.ParseInt(token, 10, 64); err == nil {
			*id = PersistedID(n)
			return nil
		}
		*id = TemporaryID(token)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid record id %s: %w", s, err)
	}
	*id = PersistedID(n)
	return nil
}
