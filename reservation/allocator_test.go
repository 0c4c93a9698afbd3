package reservation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"burger-palace-api/events"
	"burger-palace-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	rows      []models.TableReservation
	createErr error
}

func (s *fakeStore) CreateReservation(ctx context.Context, r *models.TableReservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.rows = append(s.rows, *r)
	return nil
}

func (s *fakeStore) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
			s.rows[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeStore) LoadReservations(ctx context.Context) ([]models.TableReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TableReservation(nil), s.rows...), nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(event.Type, event.EntityID).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAllocator(store Store, opts ...Option) *Allocator {
	seq := 0
	opts = append([]Option{
		WithClock(func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("res-%d", seq)
		}),
	}, opts...)
	return NewAllocator(store, events.Nop{}, discardLogger(), opts...)
}

const (
	testDate = "2024-06-01"
	testSlot = "18:00"
)

func TestMakeReservation_AssignsTablesInOrderUntilFull(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	a := newTestAllocator(store)

	for i := 1; i <= DefaultTotalTables; i++ {
		r, err := a.MakeReservation(ctx, fmt.Sprintf("user-%d", i), testDate, testSlot, 4, "")
		require.NoError(t, err)
		assert.Equal(t, i, r.TableNumber)
		assert.Equal(t, models.ReservationConfirmed, r.Status)
	}

	_, err := a.MakeReservation(ctx, "user-16", testDate, testSlot, 2, "")
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)
	assert.Len(t, store.rows, DefaultTotalTables, "no record is created past capacity")
	assert.Empty(t, a.GetUserReservations("user-16"))
}

func TestCancelReservation_FreesTableForReuse(t *testing.T) {
	ctx := context.Background()
	a := newTestAllocator(&fakeStore{})

	var seventh models.TableReservation
	for i := 1; i <= DefaultTotalTables; i++ {
		r, err := a.MakeReservation(ctx, "user-1", testDate, testSlot, 2, "")
		require.NoError(t, err)
		if r.TableNumber == 7 {
			seventh = r
		}
	}

	cancelled, err := a.CancelReservation(ctx, seventh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)
	assert.Contains(t, a.GetAvailableTimes(testDate), testSlot)

	r, err := a.MakeReservation(ctx, "user-2", testDate, testSlot, 3, "window seat")
	require.NoError(t, err)
	assert.Equal(t, 7, r.TableNumber)
}

func TestMakeReservation_FirstFitFillsGaps(t *testing.T) {
	ctx := context.Background()
	a := newTestAllocator(&fakeStore{})

	first, _ := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	second, _ := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	_, _ = a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	require.Equal(t, 2, second.TableNumber)

	_, err := a.CancelReservation(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, a.HeldTables(testDate, testSlot))

	next, err := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 2, next.TableNumber)
	assert.Equal(t, 1, first.TableNumber)
}

func TestMakeReservation_SlotsAreIndependentPools(t *testing.T) {
	ctx := context.Background()
	a := newTestAllocator(&fakeStore{}, WithTotalTables(1))

	_, err := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	require.NoError(t, err)

	other, err := a.MakeReservation(ctx, "u", testDate, "18:30", 2, "")
	require.NoError(t, err)
	assert.Equal(t, 1, other.TableNumber)

	otherDay, err := a.MakeReservation(ctx, "u", "2024-06-02", testSlot, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 1, otherDay.TableNumber)

	_, err = a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)
}

func TestMakeReservation_Validation(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		date      string
		slot      string
		partySize int
		wantErr   bool
	}{
		{name: "valid", userID: "u", date: testDate, slot: testSlot, partySize: 2},
		{name: "party above booking form maximum is accepted", userID: "u", date: testDate, slot: testSlot, partySize: 12},
		{name: "missing user", userID: "", date: testDate, slot: testSlot, partySize: 2, wantErr: true},
		{name: "bad date", userID: "u", date: "06/01/2024", slot: testSlot, partySize: 2, wantErr: true},
		{name: "unknown slot", userID: "u", date: testDate, slot: "16:00", partySize: 2, wantErr: true},
		{name: "empty party", userID: "u", date: testDate, slot: testSlot, partySize: 0, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			a := newTestAllocator(&fakeStore{})
			_, err := a.MakeReservation(context.Background(), testCase.userID, testCase.date, testCase.slot, testCase.partySize, "")
			if testCase.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMakeReservation_StoreFailureCreatesNothing(t *testing.T) {
	store := &fakeStore{createErr: errors.New("disk full")}
	a := newTestAllocator(store)

	_, err := a.MakeReservation(context.Background(), "u", testDate, testSlot, 2, "")
	assert.Error(t, err)
	assert.Empty(t, a.HeldTables(testDate, testSlot))
	assert.Empty(t, a.GetUserReservations("u"))
}

func TestGetAvailableTimes(t *testing.T) {
	ctx := context.Background()
	a := newTestAllocator(&fakeStore{})

	assert.Equal(t, TimeSlots, a.GetAvailableTimes(testDate))

	for i := 0; i < DefaultTotalTables; i++ {
		_, err := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
		require.NoError(t, err)
	}
	_, err := a.MakeReservation(ctx, "u", testDate, "11:00", 2, "")
	require.NoError(t, err)

	available := a.GetAvailableTimes(testDate)
	assert.NotContains(t, available, testSlot)
	assert.Contains(t, available, "11:00")
	assert.Len(t, available, len(TimeSlots)-1)
	assert.IsNonDecreasing(t, available)
	assert.Equal(t, available, a.GetAvailableTimes(testDate))
	assert.Equal(t, TimeSlots, a.GetAvailableTimes("2024-06-02"))
}

func TestCancelAndComplete_Transitions(t *testing.T) {
	ctx := context.Background()
	a := newTestAllocator(&fakeStore{})

	r, _ := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	done, err := a.CompleteReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCompleted, done.Status)
	assert.Equal(t, []int{1}, a.HeldTables(testDate, testSlot), "completed reservations keep their table")

	_, err = a.CancelReservation(ctx, r.ID)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = a.CancelReservation(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetUserReservations_InsertionOrderAnyStatus(t *testing.T) {
	ctx := context.Background()
	a := newTestAllocator(&fakeStore{})

	r1, _ := a.MakeReservation(ctx, "alice", testDate, "12:00", 2, "")
	_, _ = a.MakeReservation(ctx, "bob", testDate, "12:00", 2, "")
	r3, _ := a.MakeReservation(ctx, "alice", testDate, "19:00", 5, "birthday")
	_, _ = a.CancelReservation(ctx, r1.ID)

	got := a.GetUserReservations("alice")
	require.Len(t, got, 2)
	assert.Equal(t, r1.ID, got[0].ID)
	assert.Equal(t, models.ReservationCancelled, got[0].Status)
	assert.Equal(t, r3.ID, got[1].ID)
	assert.Equal(t, "birthday", got[1].SpecialRequests)
}

func TestRestore_RebuildsPools(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	first := newTestAllocator(store)
	r1, _ := first.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	_, _ = first.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	_, _ = first.CancelReservation(ctx, r1.ID)

	restored := NewAllocator(store, events.Nop{}, discardLogger())
	require.NoError(t, restored.Restore(ctx))

	assert.Equal(t, []int{2}, restored.HeldTables(testDate, testSlot))
	next, err := restored.MakeReservation(ctx, "v", testDate, testSlot, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 1, next.TableNumber)
}

func TestRestore_CancelsReservationsSharingATable(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	for i := 1; i <= DefaultTotalTables; i++ {
		store.rows = append(store.rows, models.TableReservation{
			ID: fmt.Sprintf("r%d", i), UserID: "u", Date: testDate, Time: testSlot,
			PartySize: 2, TableNumber: i, Status: models.ReservationConfirmed,
		})
	}
	store.rows = append(store.rows, models.TableReservation{
		ID: "dup", UserID: "u", Date: testDate, Time: testSlot,
		PartySize: 2, TableNumber: 1, Status: models.ReservationConfirmed,
	})

	a := newTestAllocator(store)
	require.NoError(t, a.Restore(ctx))

	dup, err := a.GetReservation("dup")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, dup.Status)
	assert.Equal(t, models.ReservationCancelled, store.rows[DefaultTotalTables].Status)
	assert.Equal(t, time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC), store.rows[DefaultTotalTables].UpdatedAt)

	_, err = a.CancelReservation(ctx, "r2")
	require.NoError(t, err)
	next, err := a.MakeReservation(ctx, "v", testDate, testSlot, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 2, next.TableNumber)

	active := 0
	for _, r := range a.GetUserReservations("u") {
		if r.Active() {
			active++
		}
	}
	for _, r := range a.GetUserReservations("v") {
		if r.Active() {
			active++
		}
	}
	assert.Equal(t, DefaultTotalTables, active)
	_, err = a.MakeReservation(ctx, "w", testDate, testSlot, 2, "")
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)
}

func TestMakeReservation_ConcurrentCallersNeverExceedCapacity(t *testing.T) {
	ctx := context.Background()
	a := NewAllocator(&fakeStore{}, events.Nop{}, discardLogger())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		tables   = map[int]int{}
		failures int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, models.ErrCapacityExceeded)
				failures++
				return
			}
			tables[r.TableNumber]++
		}()
	}
	wg.Wait()

	assert.Len(t, tables, DefaultTotalTables)
	for table, count := range tables {
		assert.Equal(t, 1, count, "table %d assigned twice", table)
	}
	assert.Equal(t, 40-DefaultTotalTables, failures)
}

func TestEventsArePublished(t *testing.T) {
	ctx := context.Background()
	pub := new(mockPublisher)
	pub.On("Publish", events.ReservationCreated, "res-1").Return(nil).Once()
	pub.On("Publish", events.ReservationCancelled, "res-1").Return(errors.New("broker down")).Once()

	a := NewAllocator(&fakeStore{}, pub, discardLogger(), WithIDGenerator(func() string { return "res-1" }))
	r, err := a.MakeReservation(ctx, "u", testDate, testSlot, 2, "")
	require.NoError(t, err)
	_, err = a.CancelReservation(ctx, r.ID)
	assert.NoError(t, err, "publish failures do not fail the operation")

	pub.AssertExpectations(t)
}
