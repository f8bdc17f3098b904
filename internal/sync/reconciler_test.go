package sync

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/adityarawat/prepometer/internal/ident"
	"github.com/adityarawat/prepometer/internal/models"
)

// fakeGateway is an in-memory stand-in for the hosted record store.
type fakeGateway struct {
	mu          sync.Mutex
	nextID      int64
	checklist   map[int64]models.ChecklistItem
	dailyLog    map[int64]models.DailyLogEntry
	deleteCalls []int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		nextID:    0,
		checklist: make(map[int64]models.ChecklistItem),
		dailyLog:  make(map[int64]models.DailyLogEntry),
	}
}

func (g *fakeGateway) seedItem(item models.ChecklistItem) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	item.ID = models.PersistedID(g.nextID)
	g.checklist[g.nextID] = item
	return g.nextID
}

func (g *fakeGateway) SelectChecklist(ctx context.Context, ownerID string) ([]models.ChecklistItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var items []models.ChecklistItem
	for id := int64(1); id <= g.nextID; id++ {
		if item, ok := g.checklist[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (g *fakeGateway) InsertChecklist(ctx context.Context, ownerID string, item models.ChecklistItem) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	item.ID = models.PersistedID(g.nextID)
	g.checklist[g.nextID] = item
	return g.nextID, nil
}

func (g *fakeGateway) UpdateChecklist(ctx context.Context, ownerID string, item models.ChecklistItem) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.checklist[item.ID.ServerID()] = item
	return nil
}

func (g *fakeGateway) DeleteChecklist(ctx context.Context, ownerID string, serverID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteCalls = append(g.deleteCalls, serverID)
	delete(g.checklist, serverID)
	return nil
}

func (g *fakeGateway) SelectDailyLog(ctx context.Context, ownerID string) ([]models.DailyLogEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var entries []models.DailyLogEntry
	for id := int64(1); id <= g.nextID; id++ {
		if e, ok := g.dailyLog[id]; ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (g *fakeGateway) InsertDailyLog(ctx context.Context, ownerID string, entry models.DailyLogEntry) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	entry.ID = models.PersistedID(g.nextID)
	g.dailyLog[g.nextID] = entry
	return g.nextID, nil
}

func (g *fakeGateway) Close() error { return nil }

func (g *fakeGateway) checklistCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.checklist)
}

// memStore is an in-memory storage.Provider.
type memStore struct {
	mu        sync.Mutex
	checklist []models.ChecklistItem
	dailyLog  []models.DailyLogEntry
}

func (s *memStore) Init() error  { return nil }
func (s *memStore) Close() error { return nil }

func (s *memStore) LoadChecklist() []models.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checklist == nil {
		return models.DefaultChecklist(ident.NewTemporary)
	}
	out := make([]models.ChecklistItem, len(s.checklist))
	copy(out, s.checklist)
	return out
}

func (s *memStore) SaveChecklist(items []models.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checklist = make([]models.ChecklistItem, len(items))
	copy(s.checklist, items)
	return nil
}

func (s *memStore) LoadDailyLog() []models.DailyLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DailyLogEntry, len(s.dailyLog))
	copy(out, s.dailyLog)
	return out
}

func (s *memStore) SaveDailyLog(entries []models.DailyLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyLog = make([]models.DailyLogEntry, len(entries))
	copy(s.dailyLog, entries)
	return nil
}

func (s *memStore) GetPath() string { return "(memory)" }

func emptyStore() *memStore {
	return &memStore{checklist: []models.ChecklistItem{}, dailyLog: []models.DailyLogEntry{}}
}

func storeWith(items ...models.ChecklistItem) *memStore {
	s := emptyStore()
	s.checklist = items
	return s
}

func tmpItem(topic string) models.ChecklistItem {
	return models.ChecklistItem{
		ID:      ident.NewTemporary(),
		Subject: models.SubjectMaths,
		Topic:   topic,
		Status:  models.StatusNotStarted,
	}
}

func signIn(t *testing.T, r *Reconciler) {
	t.Helper()
	r.BeginAuth()
	if err := r.CompleteAuth(context.Background(), models.Identity{UserID: "user-1", Email: "u@example.com"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
}

func TestStateMachine_Transitions(t *testing.T) {
	r := New(emptyStore(), newFakeGateway())

	if r.State() != Anonymous {
		t.Fatalf("expected anonymous start, got %v", r.State())
	}
	r.BeginAuth()
	if r.State() != Authenticating {
		t.Fatalf("expected authenticating, got %v", r.State())
	}
	r.FailAuth()
	if r.State() != Anonymous {
		t.Fatalf("expected anonymous after failed check, got %v", r.State())
	}

	signIn(t, r)
	if r.State() != Authenticated {
		t.Fatalf("expected authenticated, got %v", r.State())
	}
	r.SignOut()
	if r.State() != Anonymous {
		t.Fatalf("expected anonymous after sign-out, got %v", r.State())
	}
}

func TestCreate_PromotesTemporaryID(t *testing.T) {
	gw := newFakeGateway()
	gw.nextID = 41 // next insert returns 42
	r := New(emptyStore(), gw)
	signIn(t, r)

	created, err := r.AddItem(models.ChecklistItem{Subject: models.SubjectMaths, Topic: "Percentages"})
	if err != nil {
		t.Fatal(err)
	}
	if !created.ID.IsTemporary() {
		t.Fatalf("freshly created item should start temporary, got %v", created.ID)
	}
	r.Wait()

	var with42, withToken int
	for _, item := range r.Checklist() {
		if item.ID == models.PersistedID(42) {
			with42++
		}
		if item.ID == created.ID {
			withToken++
		}
	}
	if with42 != 1 {
		t.Errorf("expected exactly one item with server id 42, got %d", with42)
	}
	if withToken != 0 {
		t.Errorf("expected no item still carrying the temporary token, got %d", withToken)
	}
}

func TestUpdate_TemporaryRecordPromotedToInsert(t *testing.T) {
	gw := newFakeGateway()
	item := tmpItem("Tenses")
	r := New(storeWith(item), gw)
	signIn(t, r) // remote empty, local preserved

	_, err := r.UpdateItem(item.ID, func(it *models.ChecklistItem) {
		it.Status = models.StatusDone
	})
	if err != nil {
		t.Fatal(err)
	}
	r.Wait()

	if gw.checklistCount() != 1 {
		t.Fatalf("update of a temporary record should insert remotely, remote has %d rows", gw.checklistCount())
	}
	items := r.Checklist()
	if !items[0].ID.IsPersisted() {
		t.Errorf("record should be promoted to its server id, got %v", items[0].ID)
	}
	if !items[0].IsDone() {
		t.Errorf("status change lost during promotion: %+v", items[0])
	}
}

func TestDelete_TemporaryRecordIssuesNoRemoteDelete(t *testing.T) {
	gw := newFakeGateway()
	item := tmpItem("Syllogism")
	r := New(storeWith(item), gw)
	signIn(t, r)

	if err := r.DeleteItem(item.ID); err != nil {
		t.Fatal(err)
	}
	r.Wait()

	if len(gw.deleteCalls) != 0 {
		t.Errorf("delete of a temporary record must not reach the gateway, got calls %v", gw.deleteCalls)
	}
	if len(r.Checklist()) != 0 {
		t.Errorf("item should be gone locally")
	}
}

func TestDelete_PersistedRecordIssuesRemoteDelete(t *testing.T) {
	gw := newFakeGateway()
	serverID := gw.seedItem(models.ChecklistItem{Subject: models.SubjectGK, Topic: "Awards", Status: models.StatusNotStarted})
	r := New(emptyStore(), gw)
	signIn(t, r) // pulls the remote row

	if err := r.DeleteItem(models.PersistedID(serverID)); err != nil {
		t.Fatal(err)
	}
	r.Wait()

	if len(gw.deleteCalls) != 1 || gw.deleteCalls[0] != serverID {
		t.Errorf("expected one remote delete for id %d, got %v", serverID, gw.deleteCalls)
	}
}

func TestPull_EmptyRemotePreservesLocal(t *testing.T) {
	r := New(storeWith(tmpItem("A"), tmpItem("B"), tmpItem("C")), newFakeGateway())
	signIn(t, r)

	if got := len(r.Checklist()); got != 3 {
		t.Errorf("local offline work must survive sign-in against an empty remote, got %d items", got)
	}
}

func TestPull_NonEmptyRemoteReplacesLocal(t *testing.T) {
	gw := newFakeGateway()
	for _, topic := range []string{"R1", "R2", "R3", "R4", "R5"} {
		gw.seedItem(models.ChecklistItem{Subject: models.SubjectEnglish, Topic: topic, Status: models.StatusNotStarted})
	}
	store := storeWith(tmpItem("L1"), tmpItem("L2"), tmpItem("L3"))
	r := New(store, gw)
	signIn(t, r)

	items := r.Checklist()
	if len(items) != 5 {
		t.Fatalf("local should be replaced by the 5 remote items, got %d", len(items))
	}
	for _, item := range items {
		if !item.ID.IsPersisted() {
			t.Errorf("pulled item should carry a server id, got %v", item.ID)
		}
	}
	// The replacement is persisted locally too
	if got := len(store.LoadChecklist()); got != 5 {
		t.Errorf("pulled state should be written to local storage, got %d items", got)
	}
}

func TestImportAll_TwiceDuplicatesRemoteRows(t *testing.T) {
	gw := newFakeGateway()
	r := New(storeWith(tmpItem("A"), tmpItem("B")), gw)
	signIn(t, r)

	if _, err := r.ImportAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ImportAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	if gw.checklistCount() != 4 {
		t.Errorf("bulk import twice with 2 items must yield 4 remote rows, got %d", gw.checklistCount())
	}
}

func TestImportAll_RequiresSession(t *testing.T) {
	r := New(storeWith(tmpItem("A")), newFakeGateway())
	if _, err := r.ImportAll(context.Background()); err == nil {
		t.Error("bulk import should be rejected while anonymous")
	}
}

func TestMutationsWhileAnonymousStayLocal(t *testing.T) {
	gw := newFakeGateway()
	r := New(emptyStore(), gw)

	if _, err := r.AddItem(models.ChecklistItem{Subject: models.SubjectGK, Topic: "Polity"}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddLogEntry(models.DailyLogEntry{Date: "2025-08-02", Hours: 2}); err != nil {
		t.Fatal(err)
	}
	r.Wait()

	if gw.checklistCount() != 0 {
		t.Errorf("anonymous mutations must not reach the gateway")
	}
	if len(r.Checklist()) != 1 || len(r.DailyLog()) != 1 {
		t.Errorf("anonymous mutations must land locally")
	}
}

func TestAddLogEntry_ValidationAndPush(t *testing.T) {
	gw := newFakeGateway()
	r := New(emptyStore(), gw)
	signIn(t, r)

	if _, err := r.AddLogEntry(models.DailyLogEntry{Date: "2025-08-02", Hours: -1}); err == nil {
		t.Error("negative hours must be rejected before any mutation")
	}
	if len(r.DailyLog()) != 0 {
		t.Fatal("rejected entry must not be applied")
	}

	mock := 68.0
	if _, err := r.AddLogEntry(models.DailyLogEntry{Date: "2025-08-02", Hours: 3, MathsQ: 10, Mock: &mock}); err != nil {
		t.Fatal(err)
	}
	r.Wait()

	logs := r.DailyLog()
	if len(logs) != 1 || !logs[0].ID.IsPersisted() {
		t.Errorf("pushed log entry should be promoted to its server id, got %+v", logs)
	}
}

// brokenGateway fails every select; mutations still succeed.
type brokenGateway struct {
	*fakeGateway
}

func (g *brokenGateway) SelectChecklist(ctx context.Context, ownerID string) ([]models.ChecklistItem, error) {
	return nil, fmt.Errorf("vault unreachable")
}

func (g *brokenGateway) SelectDailyLog(ctx context.Context, ownerID string) ([]models.DailyLogEntry, error) {
	return nil, fmt.Errorf("vault unreachable")
}

func TestCompleteAuth_PullFailureSurfacesButKeepsLocal(t *testing.T) {
	gw := &brokenGateway{fakeGateway: newFakeGateway()}
	r := New(storeWith(tmpItem("A"), tmpItem("B")), gw)

	r.BeginAuth()
	err := r.CompleteAuth(context.Background(), models.Identity{UserID: "user-1", Email: "u@example.com"})
	if err == nil {
		t.Fatal("a failed pull should be reported to the caller")
	}
	if r.State() != Authenticated {
		t.Errorf("a failed pull must not end the session, state = %v", r.State())
	}
	if got := len(r.Checklist()); got != 2 {
		t.Errorf("local collection must stand after a failed pull, got %d items", got)
	}
}

func TestNilGateway_PureLocalOperation(t *testing.T) {
	r := New(emptyStore(), nil)
	if _, err := r.AddItem(models.ChecklistItem{Subject: models.SubjectMaths, Topic: "Ratios"}); err != nil {
		t.Fatal(err)
	}
	r.Wait()
	if len(r.Checklist()) != 1 {
		t.Error("local mutation should work without a remote store")
	}
}
