// Package cart derives the shopping cart view from the local store and
// applies line mutations with upsert-by-id semantics.
package cart

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

type Service struct {
	store *storage.Store
	log   zerolog.Logger
}

func New(store *storage.Store, logger zerolog.Logger) *Service {
	return &Service{store: store, log: logger}
}

// Items returns the current cart lines.
func (s *Service) Items() ([]models.CartItem, error) {
	return s.store.Cart()
}

// Add puts one unit of the menu item in the cart. An existing line for the
// same item id has its quantity incremented; otherwise a new line with
// quantity 1 is appended.
func (s *Service) Add(item models.MenuItem) error {
	return s.store.UpdateCart(func(items []models.CartItem) []models.CartItem {
		for i := range items {
			if items[i].ID == item.ID {
				items[i].Quantity++
				return items
			}
		}
		return append(items, models.CartItem{MenuItem: item, Quantity: 1})
	})
}

// UpdateQuantity sets the line quantity to exactly n. A quantity of zero or
// less removes the line. Unknown item ids are ignored.
func (s *Service) UpdateQuantity(itemID string, n int) error {
	return s.store.UpdateCart(func(items []models.CartItem) []models.CartItem {
		for i := range items {
			if items[i].ID != itemID {
				continue
			}
			if n <= 0 {
				return append(items[:i], items[i+1:]...)
			}
			items[i].Quantity = n
			return items
		}
		return items
	})
}

// Remove deletes the line for the item id; removing an absent line is a no-op.
func (s *Service) Remove(itemID string) error {
	return s.store.UpdateCart(func(items []models.CartItem) []models.CartItem {
		kept := items[:0]
		for _, it := range items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		return kept
	})
}

// Clear resets the cart. Called after a full-cart checkout.
func (s *Service) Clear() error {
	return s.store.SaveCart([]models.CartItem{})
}

// Count returns the badge number shown next to the cart icon: the sum of all
// line quantities.
func (s *Service) Count() (int, error) {
	items, err := s.store.Cart()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n, nil
}

// Total sums price times quantity over the given lines.
func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
