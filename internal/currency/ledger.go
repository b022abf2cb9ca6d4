package currency

import (
	"context"
	"sync"

	"github.com/sunhollow/farmstead/internal/event"
	"github.com/sunhollow/farmstead/internal/logger"
)

// Ledger holds the session's gold balance. The balance never goes
// negative: SpendGold is all-or-nothing.
type Ledger struct {
	mu      sync.Mutex
	balance int
	bus     event.Bus
}

// NewLedger creates a ledger with the configured starting balance.
// Negative starting balances are clamped to zero.
func NewLedger(bus event.Bus, startingGold int) *Ledger {
	if startingGold < 0 {
		startingGold = 0
	}
	return &Ledger{balance: startingGold, bus: bus}
}

// Balance returns the current gold balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// AddGold credits amount to the balance. Non-positive amounts are a no-op.
func (l *Ledger) AddGold(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance += amount
	l.publish(ctx)
	logger.FromContext(ctx).Debug("Gold added", "amount", amount, "balance", l.balance)
}

// SpendGold debits amount from the balance. Returns false without any
// mutation when amount is non-positive or exceeds the balance; a spend
// never partially decrements.
func (l *Ledger) SpendGold(ctx context.Context, amount int) bool {
	if amount <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance < amount {
		return false
	}

	l.balance -= amount
	l.publish(ctx)
	logger.FromContext(ctx).Debug("Gold spent", "amount", amount, "balance", l.balance)
	return true
}

// HasEnough reports whether the balance covers amount.
func (l *Ledger) HasEnough(amount int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance >= amount
}

// publish fires gold_changed with the post-mutation balance. Callers hold l.mu.
func (l *Ledger) publish(ctx context.Context) {
	if l.bus == nil {
		return
	}
	if err := l.bus.Publish(ctx, event.NewGoldChangedEvent(l.balance)); err != nil {
		logger.FromContext(ctx).Warn("Event handler failed", "event_type", event.GoldChanged, "error", err)
	}
}
