package models

import (
	"encoding/json"
	"testing"
)

func TestRecordID_States(t *testing.T) {
	var zero RecordID
	if !zero.IsZero() || zero.IsTemporary() || zero.IsPersisted() {
		t.Error("zero id should be neither temporary nor persisted")
	}

	tmp := TemporaryID("tmp-abc")
	if !tmp.IsTemporary() || tmp.IsPersisted() {
		t.Error("expected temporary id")
	}
	if tmp.String() != "tmp-abc" {
		t.Errorf("expected token string, got %q", tmp.String())
	}

	srv := PersistedID(42)
	if srv.IsTemporary() || !srv.IsPersisted() {
		t.Error("expected persisted id")
	}
	if srv.ServerID() != 42 {
		t.Errorf("expected server id 42, got %d", srv.ServerID())
	}
}

func TestRecordID_JSONRoundTrip(t *testing.T) {
	cases := []RecordID{
		TemporaryID("tmp-xyz"),
		PersistedID(7),
	}
	for _, id := range cases {
		data, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal %v: %v", id, err)
		}
		var got RecordID
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != id {
			t.Errorf("round trip changed id: %v -> %v", id, got)
		}
	}
}

func TestRecordID_UnmarshalLegacyNumericString(t *testing.T) {
	// Older exports stored server ids as JSON strings
	var id RecordID
	if err := json.Unmarshal([]byte(`"42"`), &id); err != nil {
		t.Fatal(err)
	}
	if !id.IsPersisted() || id.ServerID() != 42 {
		t.Errorf("expected persisted 42, got %v", id)
	}
}

func TestParseRecordID(t *testing.T) {
	id, err := ParseRecordID("15")
	if err != nil {
		t.Fatal(err)
	}
	if !id.IsPersisted() || id.ServerID() != 15 {
		t.Errorf("expected persisted 15, got %v", id)
	}

	id, err = ParseRecordID("tmp-deadbeef")
	if err != nil {
		t.Fatal(err)
	}
	if !id.IsTemporary() {
		t.Errorf("expected temporary id, got %v", id)
	}

	if _, err := ParseRecordID("  "); err == nil {
		t.Error("expected error for blank id")
	}
}

func TestChecklistItem_IsDone(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{"Done", true},
		{"done", true},
		{"DONE (revised twice)", true},
		{" done ", true},
		{"In progress", false},
		{"Not started", false},
		{"", false},
	}
	for _, c := range cases {
		item := ChecklistItem{Status: c.status}
		if item.IsDone() != c.want {
			t.Errorf("IsDone(%q) = %v, want %v", c.status, !c.want, c.want)
		}
	}
}
