package models

// Trip is a catalog entry offered for booking. Date, price and image are
// optional; Image holds only the stored filename, never a path.
type Trip struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Date        string  `json:"date,omitempty"`
	Price       *string `json:"price,omitempty"`
	Image       string  `json:"image,omitempty"`
}
