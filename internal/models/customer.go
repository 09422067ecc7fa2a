package models

type Customer struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Phone       *string `json:"phone,omitempty" db:"phone"`
	IsTemporary bool    `json:"is_temporary" db:"is_temporary"`
	Village     *string `json:"village,omitempty" db:"village"`
	CompanyName *string `json:"company_name,omitempty" db:"company_name"`
	IsStarred   bool    `json:"is_starred" db:"is_starred"`
	CreatedAt   int64   `json:"created_at" db:"created_at"`
	UpdatedAt   int64   `json:"updated_at" db:"updated_at"`
}

// CreateCustomerRequest is the request body for POST /api/customers
type CreateCustomerRequest struct {
	Name        string  `json:"name"`
	Phone       *string `json:"phone,omitempty"`
	IsTemporary bool    `json:"is_temporary"`
	Village     *string `json:"village,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	IsStarred   *bool   `json:"is_starred,omitempty"`
}

// UpdateCustomerRequest is the request body for PATCH /api/customers/:id
type UpdateCustomerRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsTemporary *bool   `json:"is_temporary,omitempty"`
	Village     *string `json:"village,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	IsStarred   *bool   `json:"is_starred,omitempty"`
}
