package models

type Truck struct {
	ID        string   `json:"id" db:"id"`
	Number    string   `json:"number" db:"number"`
	Model     *string  `json:"model,omitempty" db:"model"`
	Capacity  *float64 `json:"capacity,omitempty" db:"capacity"` // tonnes
	CreatedAt int64    `json:"created_at" db:"created_at"`
	UpdatedAt int64    `json:"updated_at" db:"updated_at"`
}

// CreateTruckRequest is the request body for POST /api/trucks
type CreateTruckRequest struct {
	Number   string   `json:"number"`
	Model    *string  `json:"model,omitempty"`
	Capacity *float64 `json:"capacity,omitempty"`
}

// UpdateTruckRequest is the request body for PATCH /api/trucks/:id
type UpdateTruckRequest struct {
	Number   *string  `json:"number,omitempty"`
	Model    *string  `json:"model,omitempty"`
	Capacity *float64 `json:"capacity,omitempty"`
}
