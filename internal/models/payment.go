package models

// Payment is a single settlement entry against an outstanding balance.
// The same record shape is used on both sides of the money flow: payments
// received from a customer and payments made to a driver. Date is a Unix
// timestamp; 0 means the date was not recorded.
type Payment struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
	Method string  `json:"method"`
	Photo  *string `json:"photo,omitempty"` // receipt photo
}

// Expense is an arbitrary named cost line attached to a load.
type Expense struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
}

// Part is one commodity line of a load's cargo.
type Part struct {
	Commodity string  `json:"commodity"`
	Weight    float64 `json:"weight"` // tonnes
}
