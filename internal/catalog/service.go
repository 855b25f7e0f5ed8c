// Package catalog serves the menu: the filtered storefront view and the
// admin edit operations.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All"

// ErrItemNotFound is returned when an admin edit targets an unknown item id.
var ErrItemNotFound = errors.New("menu item not found")

type Service struct {
	store    *storage.Store
	validate *validator.Validate
	log      zerolog.Logger
}

func New(store *storage.Store, logger zerolog.Logger) *Service {
	return &Service{store: store, validate: validator.New(), log: logger}
}

// Items returns the full catalog, seeded on first access.
func (s *Service) Items() ([]models.MenuItem, error) {
	return s.store.Menu()
}

// Filter derives the storefront view: items whose category equals the
// selection (unless CategoryAll) and whose name or description contains the
// search term as a case-insensitive substring (unless empty). Source order
// is preserved.
func Filter(items []models.MenuItem, category, search string) []models.MenuItem {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if category != CategoryAll && it.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(it.Name), needle) &&
			!strings.Contains(strings.ToLower(it.Description), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Categories lists the distinct categories in first-appearance order, for
// the storefront filter bar.
func Categories(items []models.MenuItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// ItemInput is the admin form for a new menu item.
type ItemInput struct {
	Name        string          `validate:"required"`
	Price       decimal.Decimal `validate:"-"`
	Category    string          `validate:"required"`
	Image       string          `validate:"-"`
	Description string          `validate:"-"`
}

// Add lists a new item with a generated id.
func (s *Service) Add(input ItemInput) (models.MenuItem, error) {
	if err := s.validate.Struct(input); err != nil {
		return models.MenuItem{}, fmt.Errorf("menu item: %w", err)
	}
	if input.Price.IsNegative() {
		return models.MenuItem{}, fmt.Errorf("menu item: price must not be negative")
	}
	item := models.MenuItem{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		Description: input.Description,
	}
	err := s.store.UpdateMenu(func(items []models.MenuItem) []models.MenuItem {
		return append(items, item)
	})
	if err != nil {
		return models.MenuItem{}, err
	}
	s.log.Info().Str("item_id", item.ID).Str("name", item.Name).Msg("menu item added")
	return item, nil
}

// Update replaces the stored item with the same id.
func (s *Service) Update(item models.MenuItem) error {
	if item.Name == "" || item.Category == "" {
		return fmt.Errorf("menu item: name and category are required")
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("menu item: price must not be negative")
	}
	found := false
	err := s.store.UpdateMenu(func(items []models.MenuItem) []models.MenuItem {
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = item
				found = true
				break
			}
		}
		return items
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
	}
	return nil
}

// Remove delists the item; removing an unknown id is a no-op.
func (s *Service) Remove(id string) error {
	return s.store.UpdateMenu(func(items []models.MenuItem) []models.MenuItem {
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		return kept
	})
}
