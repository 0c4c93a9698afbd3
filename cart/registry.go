package cart

import (
	"context"
	"log/slog"
	"sync"

	"burger-palace-api/models"
)

// Store persists cart snapshots keyed by session
type Store interface {
	SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error
	LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error)
}

type entry struct {
	mu   sync.Mutex // orders mutate+save pairs so the stored snapshot is never stale
	cart *Cart
}

// Registry owns one cart per session and writes each change through to the store
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	store   Store
	log     *slog.Logger
}

func NewRegistry(store Store, log *slog.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		store:   store,
		log:     log,
	}
}

func (r *Registry) entry(ctx context.Context, sessionID string) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[sessionID]; ok {
		return e, nil
	}
	lines, err := r.store.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	e := &entry{cart: FromLines(lines)}
	r.entries[sessionID] = e
	return e, nil
}

// Get returns the session's current cart contents
func (r *Registry) Get(ctx context.Context, sessionID string) (Snapshot, error) {
	e, err := r.entry(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return e.cart.Snapshot(), nil
}

// Mutate applies fn to the session cart and saves the result.
// A failed save is logged; the in-memory cart stays authoritative.
func (r *Registry) Mutate(ctx context.Context, sessionID string, fn func(c *Cart)) (Snapshot, error) {
	e, err := r.entry(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fn(e.cart)
	snap := e.cart.Snapshot()
	if err := r.store.SaveCart(ctx, sessionID, snap.Lines); err != nil {
		r.log.Warn("cart snapshot failed", slog.String("session_id", sessionID), slog.Any("error", err))
	}
	return snap, nil
}

// Clear empties the session cart
func (r *Registry) Clear(ctx context.Context, sessionID string) error {
	_, err := r.Mutate(ctx, sessionID, func(c *Cart) { c.Clear() })
	return err
}

// Checkout hands the session's lines to place and clears the cart only if place succeeds.
// Cart mutations for the session wait until place returns.
func (r *Registry) Checkout(ctx context.Context, sessionID string, place func(lines []models.CartLine) error) error {
	e, err := r.entry(ctx, sessionID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := place(e.cart.Lines()); err != nil {
		return err
	}
	e.cart.Clear()
	if err := r.store.SaveCart(ctx, sessionID, nil); err != nil {
		r.log.Warn("cart snapshot failed", slog.String("session_id", sessionID), slog.Any("error", err))
	}
	return nil
}
