package models

// Item is a named thing that can be packed. Names are unique across all users.
type Item struct {
	ID   int64
	Name string
}

// UserItem records one user's desired and currently-held quantity of an item.
type UserItem struct {
	// ID is the surrogate key of the users_items row.
	ID int64

	// UserID references User.Username.
	UserID int64

	// ItemID references Item.ID.
	ItemID int64

	// ItemName is joined in from the items table on reads.
	ItemName string

	// DesiredQuantity is how many of the item the user wants to bring.
	DesiredQuantity int

	// Quantity is how many of the item the user currently holds.
	Quantity int
}

// Missing returns how many more of the item are needed to reach the desired quantity.
func (ui UserItem) Missing() int {
	if ui.Quantity >= ui.DesiredQuantity {
		return 0
	}
	return ui.DesiredQuantity - ui.Quantity
}
