// Package reservation allocates dining tables across fixed time slots.
//
// Every (date, slot) pair is an independent capacity pool of TotalTables tables.
// Tables are handed out first-fit: the lowest number not held by a non-cancelled
// reservation of the same pool. Capacity is counted in tables only; party size is
// recorded but never compared against seats.
package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"burger-palace-api/events"
	"burger-palace-api/models"
	"burger-palace-api/statemachine"

	"github.com/google/uuid"
)

const DefaultTotalTables = 15

// TimeSlots are the bookable times of day, in chronological order
var TimeSlots = []string{
	"11:00", "11:30", "12:00", "12:30", "13:00", "13:30",
	"14:00", "14:30", "17:00", "17:30", "18:00", "18:30",
	"19:00", "19:30", "20:00", "20:30", "21:00",
}

const dateLayout = "2006-01-02"

// Store persists the reservation log
type Store interface {
	CreateReservation(ctx context.Context, r *models.TableReservation) error
	UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus, updatedAt time.Time) error
	LoadReservations(ctx context.Context) ([]models.TableReservation, error)
}

type slotKey struct {
	date string
	time string
}

type Allocator struct {
	mu          sync.Mutex
	totalTables int
	slots       []string
	log         []*models.TableReservation
	byID        map[string]*models.TableReservation
	held        map[slotKey]map[int]string // table number -> reservation id
	store       Store
	publisher   events.Publisher
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

type Option func(*Allocator)

func WithTotalTables(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.totalTables = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Allocator) { a.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(a *Allocator) { a.newID = newID }
}

func NewAllocator(store Store, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Allocator {
	a := &Allocator{
		totalTables: DefaultTotalTables,
		slots:       TimeSlots,
		byID:        make(map[string]*models.TableReservation),
		held:        make(map[slotKey]map[int]string),
		store:       store,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Allocator) TotalTables() int {
	return a.totalTables
}

// Restore replaces in-memory state with the persisted reservation log.
// An active record claiming a table already held in its slot is cancelled,
// in the store and in memory, so no slot ever holds more than TotalTables.
func (a *Allocator) Restore(ctx context.Context) error {
	stored, err := a.store.LoadReservations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reservations: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.log = nil
	a.byID = make(map[string]*models.TableReservation, len(stored))
	a.held = make(map[slotKey]map[int]string)
	for i := range stored {
		r := stored[i]
		a.log = append(a.log, &r)
		a.byID[r.ID] = &r
		if !r.Active() {
			continue
		}
		pool := a.pool(slotKey{r.Date, r.Time})
		if other, taken := pool[r.TableNumber]; taken {
			now := a.now()
			if err := a.store.UpdateReservationStatus(ctx, r.ID, models.ReservationCancelled, now); err != nil {
				return fmt.Errorf("failed to cancel conflicting reservation %s: %w", r.ID, err)
			}
			r.Status = models.ReservationCancelled
			r.UpdatedAt = now
			a.logger.Warn("cancelled restored reservation sharing a table",
				slog.String("reservation_id", r.ID),
				slog.String("conflicts_with", other),
				slog.Int("table_number", r.TableNumber))
			continue
		}
		pool[r.TableNumber] = r.ID
	}
	return nil
}

// GetAvailableTimes lists the slots of date that still have a free table
func (a *Allocator) GetAvailableTimes(date string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	available := make([]string, 0, len(a.slots))
	for _, slot := range a.slots {
		if len(a.held[slotKey{date, slot}]) < a.totalTables {
			available = append(available, slot)
		}
	}
	return available
}

// MakeReservation books the lowest free table at (date, slot).
// It fails with models.ErrCapacityExceeded when every table is held; no record is created then.
func (a *Allocator) MakeReservation(ctx context.Context, userID, date, slot string, partySize int, specialRequests string) (models.TableReservation, error) {
	if err := a.validate(userID, date, slot, partySize); err != nil {
		return models.TableReservation{}, err
	}

	a.mu.Lock()
	key := slotKey{date, slot}
	table, ok := a.firstFreeTable(key)
	if !ok {
		a.mu.Unlock()
		return models.TableReservation{}, fmt.Errorf("%s %s: %w", date, slot, models.ErrCapacityExceeded)
	}

	now := a.now()
	r := &models.TableReservation{
		ID:              a.newID(),
		UserID:          userID,
		Date:            date,
		Time:            slot,
		PartySize:       partySize,
		TableNumber:     table,
		SpecialRequests: specialRequests,
		Status:          models.ReservationConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := a.store.CreateReservation(ctx, r); err != nil {
		a.mu.Unlock()
		return models.TableReservation{}, fmt.Errorf("failed to save reservation: %w", err)
	}
	a.log = append(a.log, r)
	a.byID[r.ID] = r
	a.pool(key)[table] = r.ID
	created := *r
	a.mu.Unlock()

	a.logger.Info("reservation created",
		slog.String("reservation_id", created.ID),
		slog.String("date", date),
		slog.String("time", slot),
		slog.Int("table_number", table))
	a.publish(ctx, events.ReservationCreated, created)
	return created, nil
}

// CancelReservation frees the reservation's table for immediate reuse in the same slot
func (a *Allocator) CancelReservation(ctx context.Context, id string) (models.TableReservation, error) {
	r, err := a.transition(ctx, id, models.ReservationCancelled)
	if err != nil {
		return r, err
	}
	a.publish(ctx, events.ReservationCancelled, r)
	return r, nil
}

// CompleteReservation marks a seated party as done; the table stays counted for the slot
func (a *Allocator) CompleteReservation(ctx context.Context, id string) (models.TableReservation, error) {
	r, err := a.transition(ctx, id, models.ReservationCompleted)
	if err != nil {
		return r, err
	}
	a.publish(ctx, events.ReservationCompleted, r)
	return r, nil
}

func (a *Allocator) transition(ctx context.Context, id string, to models.ReservationStatus) (models.TableReservation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.byID[id]
	if !ok {
		return models.TableReservation{}, fmt.Errorf("reservation %s: %w", id, models.ErrNotFound)
	}
	if err := statemachine.CanTransitionReservation(r.Status, to); err != nil {
		return *r, err
	}
	now := a.now()
	if err := a.store.UpdateReservationStatus(ctx, id, to, now); err != nil {
		return *r, fmt.Errorf("failed to update reservation: %w", err)
	}

	r.Status = to
	r.UpdatedAt = now
	if to == models.ReservationCancelled {
		key := slotKey{r.Date, r.Time}
		if a.held[key][r.TableNumber] == r.ID {
			delete(a.held[key], r.TableNumber)
		}
	}
	return *r, nil
}

// GetUserReservations returns every reservation of the user in booking order
func (a *Allocator) GetUserReservations(userID string) []models.TableReservation {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []models.TableReservation
	for _, r := range a.log {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out
}

func (a *Allocator) GetReservation(id string) (models.TableReservation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.byID[id]
	if !ok {
		return models.TableReservation{}, fmt.Errorf("reservation %s: %w", id, models.ErrNotFound)
	}
	return *r, nil
}

// HeldTables returns the table numbers taken at (date, slot), ascending
func (a *Allocator) HeldTables(date, slot string) []int {
	a.mu.Lock()
	defer a.mu.Unlock()

	pool := a.held[slotKey{date, slot}]
	tables := make([]int, 0, len(pool))
	for n := 1; n <= a.totalTables; n++ {
		if _, ok := pool[n]; ok {
			tables = append(tables, n)
		}
	}
	return tables
}

func (a *Allocator) pool(key slotKey) map[int]string {
	p, ok := a.held[key]
	if !ok {
		p = make(map[int]string)
		a.held[key] = p
	}
	return p
}

// firstFreeTable scans 1..totalTables; the caller holds a.mu
func (a *Allocator) firstFreeTable(key slotKey) (int, bool) {
	pool := a.held[key]
	if len(pool) >= a.totalTables {
		return 0, false
	}
	for n := 1; n <= a.totalTables; n++ {
		if _, taken := pool[n]; !taken {
			return n, true
		}
	}
	return 0, false
}

func (a *Allocator) validate(userID, date, slot string, partySize int) error {
	if userID == "" {
		return models.NewValidationError("user_id", "is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return models.NewValidationError("date", "must be a calendar date in YYYY-MM-DD form")
	}
	if !a.isSlot(slot) {
		return models.NewValidationError("time", "is not a bookable time slot")
	}
	if partySize < 1 {
		return models.NewValidationError("party_size", "must be at least 1")
	}
	return nil
}

func (a *Allocator) isSlot(slot string) bool {
	for _, s := range a.slots {
		if s == slot {
			return true
		}
	}
	return false
}

func (a *Allocator) publish(ctx context.Context, typ events.Type, r models.TableReservation) {
	err := a.publisher.Publish(ctx, events.Event{
		Type:        typ,
		EntityID:    r.ID,
		UserID:      r.UserID,
		Status:      string(r.Status),
		Date:        r.Date,
		Time:        r.Time,
		TableNumber: r.TableNumber,
		Timestamp:   a.now(),
	})
	if err != nil {
		a.logger.Warn("failed to publish reservation event",
			slog.String("type", string(typ)),
			slog.String("reservation_id", r.ID),
			slog.Any("error", err))
	}
}
