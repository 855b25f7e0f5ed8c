// Package order creates orders from the cart or a single express item,
// tracks their kitchen status, and answers lookups by order id.
package order

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/numanubhani/grillhut/internal/cart"
	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

var (
	// ErrEmptyOrder is returned when checkout is attempted with no items.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrScreenshotRequired is returned when an online payment carries no
	// payment screenshot.
	ErrScreenshotRequired = errors.New("online payment requires a payment screenshot")
	// ErrNotFound is returned by status updates for unknown order ids.
	ErrNotFound = errors.New("order not found")
)

type Service struct {
	store    *storage.Store
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

func New(store *storage.Store, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		log:      logger,
		now:      time.Now,
	}
}

// PlaceFromCart checks out the whole cart. On success the cart is cleared
// and the generated order id is returned.
func (s *Service) PlaceFromCart(info models.CustomerInfo, method models.PaymentMethod, screenshot string) (string, error) {
	items, err := s.store.Cart()
	if err != nil {
		return "", err
	}
	id, err := s.place(items, info, method, screenshot)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveCart([]models.CartItem{}); err != nil {
		return "", fmt.Errorf("clear cart after checkout: %w", err)
	}
	return id, nil
}

// PlaceSingle is the express checkout path: one unit of a single menu item,
// bypassing the cart entirely.
func (s *Service) PlaceSingle(item models.MenuItem, info models.CustomerInfo, method models.PaymentMethod, screenshot string) (string, error) {
	return s.place([]models.CartItem{{MenuItem: item, Quantity: 1}}, info, method, screenshot)
}

// place validates input, snapshots the items, and appends the new order.
// Validation failures abort before anything is written.
func (s *Service) place(items []models.CartItem, info models.CustomerInfo, method models.PaymentMethod, screenshot string) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyOrder
	}
	if err := s.validate.Struct(info); err != nil {
		return "", fmt.Errorf("customer info: %w", err)
	}
	if _, err := models.ParsePaymentMethod(string(method)); err != nil {
		return "", err
	}
	if method == models.PaymentOnline && screenshot == "" {
		return "", ErrScreenshotRequired
	}

	// Snapshot so later cart or catalog edits cannot reach into the order.
	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	o := models.Order{
		Items:             snapshot,
		Total:             cart.Total(snapshot),
		Status:            models.StatusReceived,
		PaymentMethod:     method,
		PaymentScreenshot: screenshot,
		Customer:          info,
		CreatedAt:         s.now(),
	}
	err := s.store.UpdateOrders(func(orders []models.Order) []models.Order {
		o.ID = nextID(orders, o.CreatedAt)
		return append(orders, o)
	})
	if err != nil {
		return "", err
	}
	s.log.Info().
		Str("order_id", o.ID).
		Str("customer", o.Customer.Name).
		Str("total", o.Total.String()).
		Str("payment", string(o.PaymentMethod)).
		Msg("order placed")
	return o.ID, nil
}

// nextID derives the order id from the creation timestamp in unix
// milliseconds, bumping until it is unique within the collection.
func nextID(orders []models.Order, createdAt time.Time) string {
	taken := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		taken[o.ID] = struct{}{}
	}
	ms := createdAt.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, dup := taken[id]; !dup {
			return id
		}
		ms++
	}
}

// UpdateStatus overwrites the status of the order with the given id. Setting
// the current status again is a harmless no-op; transitions are deliberately
// not restricted to the forward sequence so the admin can correct mistakes.
func (s *Service) UpdateStatus(id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", status)
	}
	found := false
	err := s.store.UpdateOrders(func(orders []models.Order) []models.Order {
		for i := range orders {
			if orders[i].ID == id {
				orders[i].Status = status
				found = true
				break
			}
		}
		return orders
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.log.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return nil
}

// Find scans the collection for an exact id match. Absence is reported via
// the bool, never as an error.
func (s *Service) Find(id string) (models.Order, bool, error) {
	orders, err := s.store.Orders()
	if err != nil {
		return models.Order{}, false, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, true, nil
		}
	}
	return models.Order{}, false, nil
}

// List returns all orders in placement order.
func (s *Service) List() ([]models.Order, error) {
	return s.store.Orders()
}

// Stats summarizes the order book for the admin dashboard.
type Stats struct {
	Revenue   decimal.Decimal
	Total     int
	Pending   int
	Delivered int
}

func (s *Service) Stats() (Stats, error) {
	orders, err := s.store.Orders()
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Revenue: decimal.Zero, Total: len(orders)}
	for _, o := range orders {
		st.Revenue = st.Revenue.Add(o.Total)
		if o.Status == models.StatusDelivered {
			st.Delivered++
		} else {
			st.Pending++
		}
	}
	return st, nil
}
