package models

// CartItem is a menu item placed in the cart with a positive quantity.
// The cart holds at most one line per menu item id.
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}
