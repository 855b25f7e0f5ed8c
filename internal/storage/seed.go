package storage

import (
	"github.com/shopspring/decimal"

	"github.com/numanubhani/grillhut/internal/models"
)

// DefaultMenu is the catalog written on first access to an empty store.
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:          "1",
			Name:        "Classic Burger",
			Price:       decimal.NewFromInt(299),
			Category:    "Burgers",
			Image:       "https://images.pexels.com/photos/1639557/pexels-photo-1639557.jpeg?auto=compress&cs=tinysrgb&w=300",
			Description: "Juicy beef patty with lettuce, tomato, and cheese",
		},
		{
			ID:          "2",
			Name:        "Margherita Pizza",
			Price:       decimal.NewFromInt(449),
			Category:    "Pizzas",
			Image:       "https://images.pexels.com/photos/2147491/pexels-photo-2147491.jpeg?auto=compress&cs=tinysrgb&w=300",
			Description: "Classic pizza with fresh basil and mozzarella",
		},
		{
			ID:          "3",
			Name:        "Chicken Wings",
			Price:       decimal.NewFromInt(199),
			Category:    "Appetizers",
			Image:       "https://images.pexels.com/photos/60616/fried-chicken-chicken-fried-crunchy-60616.jpeg?auto=compress&cs=tinysrgb&w=300",
			Description: "Crispy wings with your choice of sauce",
		},
		{
			ID:          "4",
			Name:        "Club Sandwich",
			Price:       decimal.NewFromInt(249),
			Category:    "Sandwiches",
			Image:       "https://images.pexels.com/photos/1603901/pexels-photo-1603901.jpeg?auto=compress&cs=tinysrgb&w=300",
			Description: "Triple-layer sandwich with chicken and bacon",
		},
		{
			ID:          "5",
			Name:        "Fresh Orange Juice",
			Price:       decimal.NewFromInt(99),
			Category:    "Beverages",
			Image:       "https://images.pexels.com/photos/96974/pexels-photo-96974.jpeg?auto=compress&cs=tinysrgb&w=300",
			Description: "Freshly squeezed orange juice",
		},
		{
			ID:          "6",
			Name:        "Family Deal",
			Price:       decimal.NewFromInt(899),
			Category:    "Deals",
			Image:       "https://images.pexels.com/photos/1633578/pexels-photo-1633578.jpeg?auto=compress&cs=tinysrgb&w=300",
			Description: "2 Burgers + 1 Pizza + 4 Drinks",
		},
	}
}

// DefaultCarousel is the promotional rotation written on first access.
func DefaultCarousel() []models.CarouselImage {
	return []models.CarouselImage{
		{
			ID:          "1",
			URL:         "https://images.pexels.com/photos/1633578/pexels-photo-1633578.jpeg?auto=compress&cs=tinysrgb&w=800",
			Title:       "Family Deal Special",
			Description: "Get 30% off on family combos",
		},
		{
			ID:          "2",
			URL:         "https://images.pexels.com/photos/2147491/pexels-photo-2147491.jpeg?auto=compress&cs=tinysrgb&w=800",
			Title:       "Fresh Pizza Daily",
			Description: "Made with the finest ingredients",
		},
		{
			ID:          "3",
			URL:         "https://images.pexels.com/photos/1639557/pexels-photo-1639557.jpeg?auto=compress&cs=tinysrgb&w=800",
			Title:       "Gourmet Burgers",
			Description: "Handcrafted perfection in every bite",
		},
	}
}
