package models

// Reservation links a user to a trip on a calendar date. Date is always
// "2006-01-02"; TripName is denormalized for listings only.
type Reservation struct {
	ID          int64  `json:"id"`
	HolderName  string `json:"holder_name"`
	HolderEmail string `json:"holder_email"`
	Date        string `json:"date"`
	Message     string `json:"message,omitempty"`
	TripID      int64  `json:"trip_id"`
	UserID      int64  `json:"user_id"`
	TripName    string `json:"trip_name,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
