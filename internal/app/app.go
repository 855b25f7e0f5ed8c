// Package app wires the store and services together and owns their
// lifecycle: construct with New, run the watchers with Run, release with
// Close.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/numanubhani/grillhut/internal/auth"
	"github.com/numanubhani/grillhut/internal/carousel"
	"github.com/numanubhani/grillhut/internal/cart"
	"github.com/numanubhani/grillhut/internal/catalog"
	"github.com/numanubhani/grillhut/internal/config"
	"github.com/numanubhani/grillhut/internal/order"
	"github.com/numanubhani/grillhut/internal/storage"
	"github.com/numanubhani/grillhut/internal/watch"
)

type App struct {
	cfg config.Config
	log zerolog.Logger

	Store    *storage.Store
	Catalog  *catalog.Service
	Carousel *carousel.Service
	Cart     *cart.Service
	Orders   *order.Service
	Auth     *auth.Service
}

func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	store, err := storage.Open(cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}
	adminHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &App{
		cfg:      cfg,
		log:      logger,
		Store:    store,
		Catalog:  catalog.New(store, logger),
		Carousel: carousel.New(store, logger),
		Cart:     cart.New(store, logger),
		Orders:   order.New(store, logger),
		Auth:     auth.New(store, cfg.AdminEmail, adminHash, cfg.JWTSecret, logger),
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// Run seeds the storefront collections, then streams the admin notification
// feed and cart badge updates to the log until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	menu, err := a.Catalog.Items()
	if err != nil {
		return err
	}
	slides, err := a.Carousel.Images()
	if err != nil {
		return err
	}
	a.log.Info().Int("menu_items", len(menu)).Int("carousel_slides", len(slides)).Msg("storefront ready")

	orderWatch := watch.NewOrderWatcher(a.Store, a.cfg.OrderPollInterval, a.log)
	if err := orderWatch.Prime(); err != nil {
		return err
	}
	cartWatch := watch.NewCartWatcher(a.Store, a.cfg.CartPollInterval, a.log)

	runErrs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runErrs <- orderWatch.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		runErrs <- cartWatch.Run(ctx)
	}()

	notifications := orderWatch.Notifications()
	counts := cartWatch.Counts()
	for notifications != nil || counts != nil {
		select {
		case n, ok := <-notifications:
			if !ok {
				notifications = nil
				continue
			}
			a.log.Info().
				Str("order_id", n.OrderID).
				Str("customer", n.Customer).
				Str("total", n.Total.String()).
				Msg("order notification")
		case c, ok := <-counts:
			if !ok {
				counts = nil
				continue
			}
			a.log.Debug().Int("count", c).Msg("cart badge updated")
		}
	}

	wg.Wait()
	close(runErrs)
	for err := range runErrs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}
