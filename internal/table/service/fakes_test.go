package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/louisbranch/hextable/internal/storage"
)

// fakeStore is an in-memory test double for storage.TableStore and
// storage.SeatStore, mirroring the transactional semantics of the SQLite
// store: join-code uniqueness, version checks, cascade deletes, and the
// single-current-seat rule.
type fakeStore struct {
	tables map[string]storage.TableRecord
	seats  map[string]map[string]storage.SeatRecord // tableID -> member -> seat

	joinCodeCollisions int // forces ErrJoinCodeTaken on the first N creates
	getSeatMisses      int // forces ErrNotFound on the first N seat lookups
	createTableCalls   int
	putSeatCalls       int

	getTableErr    error
	updateTableErr error
	createSeatErr  error
	putSeatErr     error
	getSeatErr     error
	deleteSeatErr  error
	listSeatsErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables: make(map[string]storage.TableRecord),
		seats:  make(map[string]map[string]storage.SeatRecord),
	}
}

var _ storage.TableStore = (*fakeStore)(nil)
var _ storage.SeatStore = (*fakeStore)(nil)

func (f *fakeStore) CreateTableWithAdmin(_ context.Context, table storage.TableRecord, admin storage.SeatRecord) error {
	f.createTableCalls++
	if f.joinCodeCollisions > 0 {
		f.joinCodeCollisions--
		return storage.ErrJoinCodeTaken
	}
	for _, existing := range f.tables {
		if existing.JoinCode == table.JoinCode {
			return storage.ErrJoinCodeTaken
		}
	}
	admin.IsCurrent = !f.memberHasCurrentSeat(admin.Member)
	f.tables[table.ID] = table
	f.seats[table.ID] = map[string]storage.SeatRecord{admin.Member: admin}
	return nil
}

func (f *fakeStore) GetTable(_ context.Context, id string) (storage.TableRecord, error) {
	if f.getTableErr != nil {
		return storage.TableRecord{}, f.getTableErr
	}
	table, ok := f.tables[id]
	if !ok {
		return storage.TableRecord{}, storage.ErrNotFound
	}
	return table, nil
}

func (f *fakeStore) GetTableByJoinCode(_ context.Context, joinCode string) (storage.TableRecord, error) {
	for _, table := range f.tables {
		if table.JoinCode == joinCode {
			return table, nil
		}
	}
	return storage.TableRecord{}, storage.ErrNotFound
}

func (f *fakeStore) UpdateTable(_ context.Context, table storage.TableRecord) (storage.TableRecord, error) {
	if f.updateTableErr != nil {
		return storage.TableRecord{}, f.updateTableErr
	}
	existing, ok := f.tables[table.ID]
	if !ok {
		return storage.TableRecord{}, storage.ErrNotFound
	}
	if existing.Version != table.Version {
		return storage.TableRecord{}, storage.ErrVersionMismatch
	}
	existing.Name = table.Name
	existing.Phase = table.Phase
	existing.Layout = table.Layout
	existing.TurnOrder = table.TurnOrder
	existing.Version++
	existing.UpdatedAt = table.UpdatedAt
	f.tables[table.ID] = existing
	return existing, nil
}

func (f *fakeStore) DeleteTable(_ context.Context, id string) error {
	if _, ok := f.tables[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.tables, id)
	delete(f.seats, id)
	return nil
}

func (f *fakeStore) ListTablesByMember(_ context.Context, member string) ([]storage.TableRecord, error) {
	var tables []storage.TableRecord
	for tableID, members := range f.seats {
		if _, ok := members[member]; !ok {
			continue
		}
		if table, ok := f.tables[tableID]; ok {
			tables = append(tables, table)
		}
	}
	sort.Slice(tables, func(i, j int) bool {
		if !tables[i].CreatedAt.Equal(tables[j].CreatedAt) {
			return tables[i].CreatedAt.Before(tables[j].CreatedAt)
		}
		return tables[i].ID < tables[j].ID
	})
	return tables, nil
}

func (f *fakeStore) CreateSeat(_ context.Context, seat storage.SeatRecord) error {
	if f.createSeatErr != nil {
		return f.createSeatErr
	}
	members, ok := f.seats[seat.TableID]
	if !ok {
		members = make(map[string]storage.SeatRecord)
		f.seats[seat.TableID] = members
	}
	if _, exists := members[seat.Member]; exists {
		return storage.ErrSeatExists
	}
	members[seat.Member] = seat
	return nil
}

func (f *fakeStore) PutSeat(_ context.Context, seat storage.SeatRecord) error {
	f.putSeatCalls++
	if f.putSeatErr != nil {
		return f.putSeatErr
	}
	members, ok := f.seats[seat.TableID]
	if !ok {
		members = make(map[string]storage.SeatRecord)
		f.seats[seat.TableID] = members
	}
	if existing, exists := members[seat.Member]; exists {
		existing.Role = seat.Role
		existing.IsCurrent = seat.IsCurrent
		existing.UpdatedAt = seat.UpdatedAt
		members[seat.Member] = existing
		return nil
	}
	members[seat.Member] = seat
	return nil
}

func (f *fakeStore) GetSeat(_ context.Context, tableID, member string) (storage.SeatRecord, error) {
	if f.getSeatErr != nil {
		return storage.SeatRecord{}, f.getSeatErr
	}
	if f.getSeatMisses > 0 {
		f.getSeatMisses--
		return storage.SeatRecord{}, storage.ErrNotFound
	}
	seat, ok := f.seats[tableID][member]
	if !ok {
		return storage.SeatRecord{}, storage.ErrNotFound
	}
	return seat, nil
}

func (f *fakeStore) DeleteSeat(_ context.Context, tableID, member string) error {
	if f.deleteSeatErr != nil {
		return f.deleteSeatErr
	}
	if _, ok := f.seats[tableID][member]; !ok {
		return storage.ErrNotFound
	}
	delete(f.seats[tableID], member)
	return nil
}

func (f *fakeStore) ListSeatsByTable(_ context.Context, tableID string) ([]storage.SeatRecord, error) {
	if f.listSeatsErr != nil {
		return nil, f.listSeatsErr
	}
	var seats []storage.SeatRecord
	for _, seat := range f.seats[tableID] {
		seats = append(seats, seat)
	}
	sortSeats(seats)
	return seats, nil
}

func (f *fakeStore) ListSeatsByMember(_ context.Context, member string) ([]storage.SeatRecord, error) {
	var seats []storage.SeatRecord
	for _, members := range f.seats {
		if seat, ok := members[member]; ok {
			seats = append(seats, seat)
		}
	}
	sortSeats(seats)
	return seats, nil
}

func (f *fakeStore) SetCurrentSeat(_ context.Context, tableID, member string) error {
	if _, ok := f.seats[tableID][member]; !ok {
		return storage.ErrNotFound
	}
	for otherID, members := range f.seats {
		if seat, ok := members[member]; ok && seat.IsCurrent {
			seat.IsCurrent = false
			f.seats[otherID][member] = seat
		}
	}
	seat := f.seats[tableID][member]
	seat.IsCurrent = true
	f.seats[tableID][member] = seat
	return nil
}

func (f *fakeStore) memberHasCurrentSeat(member string) bool {
	for _, members := range f.seats {
		if seat, ok := members[member]; ok && seat.IsCurrent {
			return true
		}
	}
	return false
}

func sortSeats(seats []storage.SeatRecord) {
	sort.Slice(seats, func(i, j int) bool {
		if !seats[i].CreatedAt.Equal(seats[j].CreatedAt) {
			return seats[i].CreatedAt.Before(seats[j].CreatedAt)
		}
		return seats[i].ID < seats[j].ID
	})
}

var testClock = time.Date(2026, time.April, 4, 10, 0, 0, 0, time.UTC)

// newTestService wires a TableService to the fake store with deterministic
// time, ids, and randomness.
func newTestService(store *fakeStore) *TableService {
	counter := 0
	return &TableService{
		stores: Stores{Tables: store, Seats: store},
		clock:  func() time.Time { return testClock },
		idGenerator: func() (string, error) {
			counter++
			return fmt.Sprintf("id-%03d", counter), nil
		},
		rngFunc: func() (*rand.Rand, error) { return rand.New(rand.NewSource(42)), nil },
	}
}

// seedTable creates a table through the service and returns its view.
func seedTable(t *testing.T, svc *TableService, name, creator string) TableView {
	t.Helper()
	created, err := svc.CreateTable(context.Background(), name, creator)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return created.Table
}

// seedConfirmedMember joins the member to the table and approves them.
func seedConfirmedMember(t *testing.T, svc *TableService, view TableView, member, admin string) {
	t.Helper()
	if _, err := svc.RequestJoin(context.Background(), view.JoinCode, member); err != nil {
		t.Fatalf("request join for %s: %v", member, err)
	}
	if _, err := svc.Approve(context.Background(), view.ID, member, admin); err != nil {
		t.Fatalf("approve %s: %v", member, err)
	}
}

// mustJoin joins the member without approving.
func mustJoin(t *testing.T, svc *TableService, view TableView, member string) {
	t.Helper()
	if _, err := svc.RequestJoin(context.Background(), view.JoinCode, member); err != nil {
		t.Fatalf("request join for %s: %v", member, err)
	}
}
