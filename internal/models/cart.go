package models

// CartItem snapshots the menu item at add-to-cart time so the cart
// survives later menu edits.
type CartItem struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
}

type CartItemRequest struct {
	Email      string  `json:"email"`
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
}
