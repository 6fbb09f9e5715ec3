// Package usecase implements the watchlist ledger.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"stock_tracker/internal/feature/watchlist/domain"
	"stock_tracker/internal/feature/watchlist/domain/entity"
)

// StorageKey is the key the watchlist is persisted under.
const StorageKey = "watchlist"

// StateStore persists the serialized collection.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Listener receives the full watchlist after each persisted mutation.
type Listener func(items []entity.WatchlistItem)

type subscription struct {
	id int
	fn Listener
}

// WatchlistLedger holds tracked symbols in insertion order with no duplicates.
type WatchlistLedger struct {
	mu        sync.Mutex
	store     StateStore
	items     []entity.WatchlistItem
	subs      []subscription
	nextSubID int
	now       func() time.Time
}

// NewWatchlistLedger loads the persisted watchlist. An absent key yields an empty ledger.
func NewWatchlistLedger(ctx context.Context, store StateStore) (*WatchlistLedger, error) {
	raw, found, err := store.Load(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	items := []entity.WatchlistItem{}
	if found {
		var decoded []entity.WatchlistItem
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
		}
		if decoded != nil {
			items = decoded
		}
	}

	return &WatchlistLedger{store: store, items: items, now: time.Now}, nil
}

// WithClock replaces the time source used for AddedAt defaults. Intended for tests.
func (w *WatchlistLedger) WithClock(now func() time.Time) *WatchlistLedger {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
	return w
}

// Add appends item unless its symbol is already tracked. Nothing is persisted for a duplicate.
// It reports whether the item was added. A zero AddedAt is stamped with the current time.
func (w *WatchlistLedger) Add(ctx context.Context, item entity.WatchlistItem) (bool, error) {
	w.mu.Lock()
	if w.indexOf(item.Symbol) >= 0 {
		w.mu.Unlock()
		return false, nil
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = w.now().UTC()
	}
	w.items = append(w.items, item)
	snapshot, subs, err := w.persistLocked(ctx)
	w.mu.Unlock()

	notify(subs, snapshot)
	return true, err
}

// Remove drops symbol from the watchlist. The collection is persisted even if symbol was absent.
func (w *WatchlistLedger) Remove(ctx context.Context, symbol string) error {
	w.mu.Lock()
	w.items = slices.DeleteFunc(w.items, func(i entity.WatchlistItem) bool {
		return i.Symbol == symbol
	})
	snapshot, subs, err := w.persistLocked(ctx)
	w.mu.Unlock()

	notify(subs, snapshot)
	return err
}

// Contains reports whether symbol is tracked.
func (w *WatchlistLedger) Contains(symbol string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOf(symbol) >= 0
}

// Items returns a copy of the watchlist in insertion order.
func (w *WatchlistLedger) Items() []entity.WatchlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.items)
}

// OnChange registers fn and returns a func that unregisters it.
func (w *WatchlistLedger) OnChange(fn Listener) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextSubID
	w.nextSubID++
	w.subs = append(w.subs, subscription{id: id, fn: fn})

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.subs = slices.DeleteFunc(w.subs, func(s subscription) bool { return s.id == id })
	}
}

// persistLocked must be called with w.mu held.
func (w *WatchlistLedger) persistLocked(ctx context.Context) ([]entity.WatchlistItem, []subscription, error) {
	snapshot := slices.Clone(w.items)
	subs := slices.Clone(w.subs)

	b, err := json.Marshal(snapshot)
	if err != nil {
		return snapshot, subs, fmt.Errorf("encode watchlist: %w", err)
	}
	if err := w.store.Save(ctx, StorageKey, b); err != nil {
		return snapshot, subs, fmt.Errorf("save watchlist: %w", err)
	}
	return snapshot, subs, nil
}

func (w *WatchlistLedger) indexOf(symbol string) int {
	return slices.IndexFunc(w.items, func(i entity.WatchlistItem) bool {
		return i.Symbol == symbol
	})
}

func notify(subs []subscription, items []entity.WatchlistItem) {
	for _, s := range subs {
		s.fn(items)
	}
}
