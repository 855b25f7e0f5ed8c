package watch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/numanubhani/grillhut/internal/storage"
)

// CartWatcher keeps the cart badge fresh: it emits the summed quantity
// whenever it changes, including the initial count on startup.
type CartWatcher struct {
	store    *storage.Store
	interval time.Duration
	log      zerolog.Logger
	out      chan int
	last     int
}

func NewCartWatcher(store *storage.Store, interval time.Duration, logger zerolog.Logger) *CartWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &CartWatcher{
		store:    store,
		interval: interval,
		log:      logger,
		out:      make(chan int, 16),
		last:     -1,
	}
}

// Counts is the stream of badge values. It is closed when Run returns.
func (w *CartWatcher) Counts() <-chan int {
	return w.out
}

// Run polls until ctx is cancelled or the store closes.
func (w *CartWatcher) Run(ctx context.Context) error {
	defer close(w.out)
	events := w.store.Subscribe(storage.KeyCart)
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

func (w *CartWatcher) poll(ctx context.Context) error {
	items, err := w.store.Cart()
	if err != nil {
		return err
	}
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	if n == w.last {
		return nil
	}
	w.last = n
	select {
	case w.out <- n:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
