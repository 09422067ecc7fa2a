package models

type Driver struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Phone     string  `json:"phone" db:"phone"`
	License   *string `json:"license,omitempty" db:"license"`
	Photo     *string `json:"photo,omitempty" db:"photo"` // URL or data URI, opaque to the backend
	CreatedAt int64   `json:"created_at" db:"created_at"`
	UpdatedAt int64   `json:"updated_at" db:"updated_at"`
}

// CreateDriverRequest is the request body for POST /api/drivers
type CreateDriverRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	License *string `json:"license,omitempty"`
	Photo   *string `json:"photo,omitempty"`
}

// UpdateDriverRequest is the request body for PATCH /api/drivers/:id
type UpdateDriverRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	License *string `json:"license,omitempty"`
	Photo   *string `json:"photo,omitempty"`
}
