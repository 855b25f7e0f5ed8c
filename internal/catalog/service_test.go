package catalog

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, zerolog.Nop())
}

func ids(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	menu := storage.DefaultMenu()

	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{"no predicates", CategoryAll, "", []string{"1", "2", "3", "4", "5", "6"}},
		{"category only", "Pizzas", "", []string{"2"}},
		{"category excludes others", "Burgers", "", []string{"1"}},
		{"search matches name", CategoryAll, "pizza", []string{"2", "6"}},
		{"search matches description", CategoryAll, "squeezed", []string{"5"}},
		{"search is case-insensitive", CategoryAll, "MARGHERITA", []string{"2"}},
		{"category and search combined", "Deals", "burgers", []string{"6"}},
		{"no match", "Pizzas", "burger", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(menu, tc.category, tc.search))
			if len(got) != len(tc.want) {
				t.Fatalf("expected ids %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected ids %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestCategoriesDistinctInSourceOrder(t *testing.T) {
	menu := append(storage.DefaultMenu(), models.MenuItem{ID: "7", Name: "Cheese Burger", Category: "Burgers"})
	got := Categories(menu)
	want := []string{"Burgers", "Pizzas", "Appetizers", "Sandwiches", "Beverages", "Deals"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAddValidatesAndGeneratesID(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Add(ItemInput{Price: decimal.NewFromInt(100), Category: "Burgers"}); err == nil {
		t.Fatal("expected error for missing name")
	}
	if _, err := s.Add(ItemInput{Name: "Zinger", Price: decimal.NewFromInt(100)}); err == nil {
		t.Fatal("expected error for missing category")
	}
	if _, err := s.Add(ItemInput{Name: "Zinger", Price: decimal.NewFromInt(-5), Category: "Burgers"}); err == nil {
		t.Fatal("expected error for negative price")
	}

	item, err := s.Add(ItemInput{Name: "Zinger Burger", Price: decimal.NewFromInt(350), Category: "Burgers"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected generated id")
	}

	items, _ := s.Items()
	if len(items) != 7 || items[6].Name != "Zinger Burger" {
		t.Fatalf("expected new item appended after seed, got %d items", len(items))
	}
}

func TestUpdateAndRemove(t *testing.T) {
	s := newTestService(t)
	items, err := s.Items() // seeds
	if err != nil {
		t.Fatalf("items: %v", err)
	}

	edited := items[0]
	edited.Price = decimal.NewFromInt(329)
	if err := s.Update(edited); err != nil {
		t.Fatalf("update: %v", err)
	}
	items, _ = s.Items()
	if !items[0].Price.Equal(decimal.NewFromInt(329)) {
		t.Fatalf("expected updated price, got %s", items[0].Price)
	}

	missing := edited
	missing.ID = "999"
	if err := s.Update(missing); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	if err := s.Remove("1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove("1"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	items, _ = s.Items()
	for _, it := range items {
		if it.ID == "1" {
			t.Fatal("expected item 1 removed")
		}
	}
}
