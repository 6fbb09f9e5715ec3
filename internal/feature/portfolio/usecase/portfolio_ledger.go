// Package usecase implements the portfolio ledger: owned positions mirrored to durable storage.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"stock_tracker/internal/feature/portfolio/domain"
	"stock_tracker/internal/feature/portfolio/domain/entity"
)

// StorageKey is the key the portfolio is persisted under.
const StorageKey = "portfolio"

// StateStore persists the serialized collection.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Listener receives the full collection after each mutation.
type Listener func(positions []entity.Position)

type subscription struct {
	id int
	fn Listener
}

// PortfolioLedger owns the ordered list of positions, at most one per symbol.
// Every mutation rewrites the whole collection to the StateStore before returning.
type PortfolioLedger struct {
	mu        sync.Mutex
	store     StateStore
	positions []entity.Position
	subs      []subscription
	nextSubID int
}

// NewPortfolioLedger loads the persisted portfolio. An absent key yields an empty ledger;
// undecodable content fails with domain.ErrMalformedState.
func NewPortfolioLedger(ctx context.Context, store StateStore) (*PortfolioLedger, error) {
	raw, found, err := store.Load(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	var positions []entity.Position
	if found {
		if err := json.Unmarshal(raw, &positions); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
		}
	}
	if positions == nil {
		positions = []entity.Position{}
	}
	return &PortfolioLedger{store: store, positions: positions}, nil
}

// Add records a buy. If the symbol is already held, the lots are merged:
//
//	shares  = old.shares + item.shares
//	average = (old.shares*old.average + item.shares*item.average) / shares
//
// The existing purchase date is kept. A merge that leaves no shares removes the position.
func (l *PortfolioLedger) Add(ctx context.Context, item entity.Position) error {
	return l.mutate(ctx, func() bool {
		i := l.indexOf(item.Symbol)
		if i < 0 {
			l.positions = append(l.positions, item)
			return true
		}

		existing := &l.positions[i]
		total := existing.Shares.Add(item.Shares)
		if !total.IsPositive() {
			l.positions = slices.Delete(l.positions, i, i+1)
			return true
		}
		existing.AveragePrice = existing.Cost().Add(item.Cost()).Div(total)
		existing.Shares = total
		return true
	})
}

// UpdateShares sets the share count of a held symbol. A count of zero or less removes the
// position. Unknown symbols are ignored and nothing is persisted.
func (l *PortfolioLedger) UpdateShares(ctx context.Context, symbol string, shares decimal.Decimal) error {
	return l.mutate(ctx, func() bool {
		i := l.indexOf(symbol)
		if i < 0 {
			return false
		}
		if !shares.IsPositive() {
			l.positions = slices.Delete(l.positions, i, i+1)
			return true
		}
		l.positions[i].Shares = shares
		return true
	})
}

// Remove drops the position for symbol and persists, whether or not it was held.
func (l *PortfolioLedger) Remove(ctx context.Context, symbol string) error {
	return l.mutate(ctx, func() bool {
		l.positions = slices.DeleteFunc(l.positions, func(p entity.Position) bool {
			return p.Symbol == symbol
		})
		return true
	})
}

// Positions returns a copy of the positions in insertion order.
func (l *PortfolioLedger) Positions() []entity.Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.positions)
}

// Find returns the position for symbol.
func (l *PortfolioLedger) Find(symbol string) (entity.Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(symbol); i >= 0 {
		return l.positions[i], true
	}
	return entity.Position{}, false
}

// TotalInvestment is the sum of shares * averagePrice over all positions.
func (l *PortfolioLedger) TotalInvestment() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, p := range l.positions {
		total = total.Add(p.Cost())
	}
	return total
}

// OnChange registers fn to be called after every mutation. The returned func unregisters it.
func (l *PortfolioLedger) OnChange(fn Listener) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSubID
	l.nextSubID++
	l.subs = append(l.subs, subscription{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.subs = slices.DeleteFunc(l.subs, func(s subscription) bool { return s.id == id })
	}
}

// mutate runs fn under the lock. When fn reports a change, the collection is saved and
// listeners are notified outside the lock.
func (l *PortfolioLedger) mutate(ctx context.Context, fn func() bool) error {
	l.mu.Lock()
	if !fn() {
		l.mu.Unlock()
		return nil
	}
	snapshot := slices.Clone(l.positions)
	err := l.save(ctx, snapshot)
	subs := slices.Clone(l.subs)
	l.mu.Unlock()

	for _, s := range subs {
		s.fn(snapshot)
	}
	return err
}

func (l *PortfolioLedger) save(ctx context.Context, positions []entity.Position) error {
	b, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	if err := l.store.Save(ctx, StorageKey, b); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	return nil
}

func (l *PortfolioLedger) indexOf(symbol string) int {
	return slices.IndexFunc(l.positions, func(p entity.Position) bool {
		return p.Symbol == symbol
	})
}
