package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/numanubhani/grillhut/internal/models"
)

// Collection keys mirror the storage keys of the original storefront. Each
// collection is persisted as one JSON document <key>.json under the data dir.
const (
	KeyMenu     = "grill_hut_menu"
	KeyCart     = "grill_hut_cart"
	KeyOrders   = "grill_hut_orders"
	KeyCarousel = "grill_hut_carousel"
	KeyAuth     = "grill_hut_auth"
)

// Event is delivered to subscribers once per committed write to a collection.
type Event struct {
	Collection string
	Revision   uint64
}

// Store is the single local data store. Every access is serialized through
// one mutex, so read-modify-write cycles done via the Update* methods cannot
// lose updates within the process. Writes overwrite the whole collection,
// last writer wins.
type Store struct {
	mu        sync.Mutex
	dir       string
	log       zerolog.Logger
	revisions map[string]uint64
	subs      map[string][]chan Event
	closed    bool
}

// Open prepares the data directory and returns a ready store. Collections
// are loaded lazily on first access.
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		dir:       dir,
		log:       logger,
		revisions: make(map[string]uint64),
		subs:      make(map[string][]chan Event),
	}, nil
}

// Close releases the store and closes all subscriber channels.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for _, subs := range s.subs {
		for _, ch := range subs {
			close(ch)
		}
	}
	s.subs = make(map[string][]chan Event)
	return nil
}

// Subscribe returns a channel that receives one event per write to the named
// collection. Slow subscribers miss events rather than block the writer;
// consumers are expected to re-read the collection on wake. The channel is
// closed when the store closes.
func (s *Store) Subscribe(key string) <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 16)
	if s.closed {
		close(ch)
		return ch
	}
	s.subs[key] = append(s.subs[key], ch)
	return ch
}

// Revision returns the number of writes committed to the collection during
// this store's lifetime. It starts at zero on every open.
func (s *Store) Revision(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revisions[key]
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// load reads the raw collection document. ok is false when the collection
// has never been written.
func (s *Store) load(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// commit persists the collection and publishes the write. Caller holds the lock.
func (s *Store) commit(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.publish(key)
	return nil
}

// publish bumps the revision and notifies subscribers. Caller holds the lock.
func (s *Store) publish(key string) {
	s.revisions[key]++
	ev := Event{Collection: key, Revision: s.revisions[key]}
	for _, ch := range s.subs[key] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// loadList reads a list collection, substituting the empty list when the
// collection has never been written.
func loadList[T any](s *Store, key string) ([]T, bool, error) {
	var items []T
	ok, err := s.load(key, &items)
	if err != nil {
		return nil, false, err
	}
	return items, ok, nil
}

// seededList reads a list collection and, on first access, seeds it with the
// default dataset (read triggers write). Caller holds the lock.
func seededList[T any](s *Store, key string, defaults func() []T) ([]T, error) {
	items, ok, err := loadList[T](s, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		items = defaults()
		if err := s.commit(key, items); err != nil {
			return nil, err
		}
		s.log.Info().Str("collection", key).Int("items", len(items)).Msg("seeded default dataset")
	}
	return items, nil
}

// Menu returns the catalog, seeding the default menu on first access.
func (s *Store) Menu() ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seededList(s, KeyMenu, DefaultMenu)
}

// SaveMenu overwrites the catalog collection.
func (s *Store) SaveMenu(items []models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(KeyMenu, items)
}

// UpdateMenu applies fn to the current (seeded) catalog and persists the result.
func (s *Store) UpdateMenu(fn func([]models.MenuItem) []models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := seededList(s, KeyMenu, DefaultMenu)
	if err != nil {
		return err
	}
	return s.commit(KeyMenu, fn(items))
}

// Cart returns the cart collection; an unwritten cart is empty.
func (s *Store) Cart() ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, _, err := loadList[models.CartItem](s, KeyCart)
	return items, err
}

// SaveCart overwrites the cart collection.
func (s *Store) SaveCart(items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(KeyCart, items)
}

// UpdateCart applies fn to the current cart and persists the result.
func (s *Store) UpdateCart(fn func([]models.CartItem) []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, _, err := loadList[models.CartItem](s, KeyCart)
	if err != nil {
		return err
	}
	return s.commit(KeyCart, fn(items))
}

// Orders returns the orders collection; an unwritten collection is empty.
func (s *Store) Orders() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, _, err := loadList[models.Order](s, KeyOrders)
	return items, err
}

// SaveOrders overwrites the orders collection.
func (s *Store) SaveOrders(orders []models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(KeyOrders, orders)
}

// UpdateOrders applies fn to the current orders and persists the result.
func (s *Store) UpdateOrders(fn func([]models.Order) []models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, _, err := loadList[models.Order](s, KeyOrders)
	if err != nil {
		return err
	}
	return s.commit(KeyOrders, fn(orders))
}

// AppendOrder adds one order to the end of the orders collection.
func (s *Store) AppendOrder(o models.Order) error {
	return s.UpdateOrders(func(orders []models.Order) []models.Order {
		return append(orders, o)
	})
}

// Carousel returns the promotional slides, seeding defaults on first access.
func (s *Store) Carousel() ([]models.CarouselImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seededList(s, KeyCarousel, DefaultCarousel)
}

// SaveCarousel overwrites the carousel collection.
func (s *Store) SaveCarousel(images []models.CarouselImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(KeyCarousel, images)
}

// UpdateCarousel applies fn to the current (seeded) slides and persists the result.
func (s *Store) UpdateCarousel(fn func([]models.CarouselImage) []models.CarouselImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	images, err := seededList(s, KeyCarousel, DefaultCarousel)
	if err != nil {
		return err
	}
	return s.commit(KeyCarousel, fn(images))
}

// CurrentUser returns the session singleton. ok is false when nobody is
// signed in.
func (s *Store) CurrentUser() (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var u models.User
	ok, err := s.load(KeyAuth, &u)
	if err != nil {
		return models.User{}, false, err
	}
	return u, ok, nil
}

// SaveUser replaces the session singleton.
func (s *Store) SaveUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(KeyAuth, u)
}

// ClearUser removes the session singleton. Clearing an absent session is a
// no-op that still notifies subscribers.
func (s *Store) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(KeyAuth)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", KeyAuth, err)
	}
	s.publish(KeyAuth)
	return nil
}
