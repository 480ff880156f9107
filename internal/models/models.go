package models

// Roles known to the remote API. They gate navigation only, the server
// enforces authorization on every request.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
	RoleUser    = "USER"
)

type Orchid struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	IsNatural   bool    `json:"isNatural"`
	Description string  `json:"description"`
	CategoryID  int     `json:"categoryId"`
	Price       float64 `json:"price"`
	URL         string  `json:"url"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Account struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Employee struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Designation string `json:"designation"`
}

type Order struct {
	ID          string  `json:"id"`
	TotalAmount float64 `json:"totalAmount"`
	OrderDate   string  `json:"orderDate"`
	OrderStatus string  `json:"orderStatus"`
	// the field is misspelled on the wire, keep the tag as the server sends it
	AccountID string `json:"acountId"`
}

type OrderDetail struct {
	ID       string  `json:"id"`
	OrderID  string  `json:"orderId"`
	OrchidID string  `json:"orchidId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CartItem is one line of a cart. The JSON shape is the on-disk contract:
// carts written by an earlier session must read back unchanged.
type CartItem struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	IsNatural bool    `json:"isNatural"`
}

// Identity is the current actor. The zero value is a guest.
type Identity struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int    `json:"userId"`
	Email         string `json:"email"`
	Role          string `json:"role"`
}

func Guest() Identity { return Identity{} }
