// Package watch keeps open views in sync with the store. Watchers wake on
// store change events and on a fixed interval as a reconcile fallback, then
// re-read their whole collection; the store has no partial reads.
package watch

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

// Notification announces one newly discovered order to the admin view.
type Notification struct {
	OrderID   string
	Customer  string
	Total     decimal.Decimal
	Status    models.OrderStatus
	CreatedAt time.Time
}

// OrderWatcher surfaces each order id at most once per watcher lifetime. A
// fresh watcher starts with an empty surfaced set, so a restarted admin
// session re-announces history unless Prime is called first.
type OrderWatcher struct {
	store    *storage.Store
	interval time.Duration
	log      zerolog.Logger
	seen     map[string]struct{}
	out      chan Notification
}

func NewOrderWatcher(store *storage.Store, interval time.Duration, logger zerolog.Logger) *OrderWatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &OrderWatcher{
		store:    store,
		interval: interval,
		log:      logger,
		seen:     make(map[string]struct{}),
		out:      make(chan Notification, 16),
	}
}

// Prime marks every order currently in the store as already surfaced, so
// only orders placed after this call are announced. Call before Run.
func (w *OrderWatcher) Prime() error {
	orders, err := w.store.Orders()
	if err != nil {
		return err
	}
	for _, o := range orders {
		w.seen[o.ID] = struct{}{}
	}
	return nil
}

// Notifications is the stream of new-order announcements. It is closed when
// Run returns.
func (w *OrderWatcher) Notifications() <-chan Notification {
	return w.out
}

// Run polls until ctx is cancelled or the store closes. Storage failures
// propagate and stop the watcher.
func (w *OrderWatcher) Run(ctx context.Context) error {
	defer close(w.out)
	events := w.store.Subscribe(storage.KeyOrders)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.poll(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case _, ok := <-events:
			if !ok {
				return nil
			}
		}
	}
}

func (w *OrderWatcher) poll(ctx context.Context) error {
	orders, err := w.store.Orders()
	if err != nil {
		return err
	}
	for _, o := range orders {
		if _, surfaced := w.seen[o.ID]; surfaced {
			continue
		}
		w.seen[o.ID] = struct{}{}
		n := Notification{
			OrderID:   o.ID,
			Customer:  o.Customer.Name,
			Total:     o.Total,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		}
		select {
		case w.out <- n:
		case <-ctx.Done():
			return ctx.Err()
		}
		w.log.Info().Str("order_id", o.ID).Str("total", o.Total.String()).Msg("new order received")
	}
	return nil
}
