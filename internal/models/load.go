package models

// Load statuses
const (
	LoadStatusActive    = "Active"
	LoadStatusCompleted = "Completed"
	LoadStatusCancelled = "Cancelled"
)

// Load is one haul: either standalone (TripID nil) or a leg of a trip, in
// which case its pickup/delivery pair matches one consecutive pair of the
// parent trip's route.
//
// CustomerID may be empty: leg loads are generated unassigned and a customer
// is attached later. Money fields follow the pointer convention: nil means
// "not recorded", which is distinct from an explicit zero.
type Load struct {
	ID                           string      `json:"id" db:"id"`
	CustomerID                   string      `json:"customer_id" db:"customer_id"`
	DriverID                     string      `json:"driver_id" db:"driver_id"`
	TruckID                      string      `json:"truck_id" db:"truck_id"`
	TripID                       *string     `json:"trip_id,omitempty" db:"trip_id"`
	PickupLocation               string      `json:"pickup_location" db:"pickup_location"`
	DeliveryLocation             string      `json:"delivery_location" db:"delivery_location"`
	PickupDateTime               int64       `json:"pickup_datetime" db:"pickup_datetime"`
	DeliveryDateTime             *int64      `json:"delivery_datetime,omitempty" db:"delivery_datetime"`
	TotalAmount                  float64     `json:"total_amount" db:"total_amount"`
	CustomerAdvance              float64     `json:"customer_advance" db:"customer_advance"`
	CustomerAdvancePaymentMethod *string     `json:"customer_advance_payment_method,omitempty" db:"customer_advance_payment_method"`
	CustomerPayments             PaymentList `json:"customer_payments" db:"customer_payments"`
	DriverWages                  float64     `json:"driver_wages" db:"driver_wages"`
	DieselPrice                  *float64    `json:"diesel_price,omitempty" db:"diesel_price"`
	DriverAdvance                *float64    `json:"driver_advance,omitempty" db:"driver_advance"`
	DriverAdvancePaymentMethod   *string     `json:"driver_advance_payment_method,omitempty" db:"driver_advance_payment_method"`
	FastagCharges                *float64    `json:"fastag_charges,omitempty" db:"fastag_charges"`
	OtherExpenses                ExpenseList `json:"other_expenses" db:"other_expenses"`
	DriverPayments               PaymentList `json:"driver_payments" db:"driver_payments"`
	Status                       string      `json:"status" db:"status"`
	Parts                        PartList    `json:"parts" db:"parts"`
	Notes                        *string     `json:"notes,omitempty" db:"notes"`
	Photos                       StringList  `json:"photos" db:"photos"`
	Tag                          *string     `json:"tag,omitempty" db:"tag"`
	CreatedAt                    int64       `json:"created_at" db:"created_at"`
	UpdatedAt                    int64       `json:"updated_at" db:"updated_at"`
}

// IsStandalone reports whether the load belongs to no trip.
func (l *Load) IsStandalone() bool {
	return l.TripID == nil || *l.TripID == ""
}

// CreateLoadRequest is the request body for POST /api/loads
type CreateLoadRequest struct {
	CustomerID                   string    `json:"customer_id"`
	DriverID                     string    `json:"driver_id"`
	TruckID                      string    `json:"truck_id"`
	TripID                       *string   `json:"trip_id,omitempty"`
	PickupLocation               string    `json:"pickup_location"`
	DeliveryLocation             string    `json:"delivery_location"`
	PickupDateTime               int64     `json:"pickup_datetime"`
	DeliveryDateTime             *int64    `json:"delivery_datetime,omitempty"`
	TotalAmount                  float64   `json:"total_amount"`
	CustomerAdvance              float64   `json:"customer_advance"`
	CustomerAdvancePaymentMethod *string   `json:"customer_advance_payment_method,omitempty"`
	DriverWages                  float64   `json:"driver_wages"`
	DieselPrice                  *float64  `json:"diesel_price,omitempty"`
	DriverAdvance                *float64  `json:"driver_advance,omitempty"`
	DriverAdvancePaymentMethod   *string   `json:"driver_advance_payment_method,omitempty"`
	FastagCharges                *float64  `json:"fastag_charges,omitempty"`
	OtherExpenses                []Expense `json:"other_expenses,omitempty"`
	Status                       string    `json:"status"`
	Parts                        []Part    `json:"parts,omitempty"`
	Notes                        *string   `json:"notes,omitempty"`
	Photos                       []string  `json:"photos,omitempty"`
	Tag                          *string   `json:"tag,omitempty"`
}

// UpdateLoadRequest is the request body for PATCH /api/loads/:id.
// Payment lists are not updatable here; they grow only through the
// dedicated payment endpoints.
type UpdateLoadRequest struct {
	CustomerID                   *string   `json:"customer_id,omitempty"`
	DriverID                     *string   `json:"driver_id,omitempty"`
	TruckID                      *string   `json:"truck_id,omitempty"`
	PickupLocation               *string   `json:"pickup_location,omitempty"`
	DeliveryLocation             *string   `json:"delivery_location,omitempty"`
	PickupDateTime               *int64    `json:"pickup_datetime,omitempty"`
	DeliveryDateTime             *int64    `json:"delivery_datetime,omitempty"`
	TotalAmount                  *float64  `json:"total_amount,omitempty"`
	CustomerAdvance              *float64  `json:"customer_advance,omitempty"`
	CustomerAdvancePaymentMethod *string   `json:"customer_advance_payment_method,omitempty"`
	DriverWages                  *float64  `json:"driver_wages,omitempty"`
	DieselPrice                  *float64  `json:"diesel_price,omitempty"`
	DriverAdvance                *float64  `json:"driver_advance,omitempty"`
	DriverAdvancePaymentMethod   *string   `json:"driver_advance_payment_method,omitempty"`
	FastagCharges                *float64  `json:"fastag_charges,omitempty"`
	OtherExpenses                []Expense `json:"other_expenses,omitempty"`
	Status                       *string   `json:"status,omitempty"`
	Parts                        []Part    `json:"parts,omitempty"`
	Notes                        *string   `json:"notes,omitempty"`
	Photos                       []string  `json:"photos,omitempty"`
	Tag                          *string   `json:"tag,omitempty"`
}

// AddPaymentRequest is the request body for the payment endpoints
// (POST /api/loads/:id/customer-payments, /api/loads/:id/driver-payments,
// POST /api/trips/:id/driver-payments, /api/material-sales/:id/payments).
type AddPaymentRequest struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date,omitempty"`
	Method string  `json:"method"`
	Photo  *string `json:"photo,omitempty"`
}

func ValidLoadStatus(s string) bool {
	switch s {
	case LoadStatusActive, LoadStatusCompleted, LoadStatusCancelled:
		return true
	}
	return false
}
