package domain

import "time"

// CartLine is one product entry in a user's cart. At most one line exists
// per item id; removal, not zero quantity, represents "not in cart".
type CartLine struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	ImageLink  string  `json:"image_link"`
	Quantity   int     `json:"quantity"`
	PickupDate string  `json:"pickup_date,omitempty"`
	PickupTime string  `json:"pickup_time,omitempty"`
}

// SessionState is the normalized answer from the backend session check.
type SessionState struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int    `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
}

type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageLink   string  `json:"image_link"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Signup struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordReset struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type OrderItem struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// OrderSubmission is the cart translated into the shape the
// order-creation endpoint expects.
type OrderSubmission struct {
	Items []OrderItem `json:"items"`
}

type HistoryEntry struct {
	OrderID   int     `json:"order_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	ImageLink string  `json:"image_link"`
	OrderDate string  `json:"order_date,omitempty"`
}

type Rating struct {
	ItemID  int    `json:"item_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type PickupRequest struct {
	ItemID     int    `json:"item_id"`
	PickupDate string `json:"pickup_date"`
	PickupTime string `json:"pickup_time"`
}

// ReservationRequest carries 1-based table ids, matching what the
// backend stores and what the user sees.
type ReservationRequest struct {
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	TablesReserved  []int  `json:"tables_reserved"`
}

type ActivityEvent struct {
	Type      string    `json:"type"`
	UserID    int       `json:"user_id"`
	Reference string    `json:"reference,omitempty"`
	Tables    []int     `json:"tables,omitempty"`
	ItemCount int       `json:"item_count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
