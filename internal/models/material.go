package models

// MaterialEntry is a bulk purchase of tradeable material (bricks, chips,
// steel) bought for resale alongside the hauling business.
type MaterialEntry struct {
	ID           string  `json:"id" db:"id"`
	MaterialName string  `json:"material_name" db:"material_name"`
	Date         int64   `json:"date" db:"date"`
	Units        float64 `json:"units" db:"units"`
	UnitCost     float64 `json:"unit_cost" db:"unit_cost"`
	TotalCost    float64 `json:"total_cost" db:"total_cost"`
	Supplier     *string `json:"supplier,omitempty" db:"supplier"`
	Notes        *string `json:"notes,omitempty" db:"notes"`
	CreatedAt    int64   `json:"created_at" db:"created_at"`
	UpdatedAt    int64   `json:"updated_at" db:"updated_at"`
}

// MaterialSale records units sold out of a material entry to a customer,
// with its own payment trail.
type MaterialSale struct {
	ID               string      `json:"id" db:"id"`
	MaterialEntryID  string      `json:"material_entry_id" db:"material_entry_id"`
	CustomerID       string      `json:"customer_id" db:"customer_id"`
	Date             int64       `json:"date" db:"date"`
	UnitsSold        float64     `json:"units_sold" db:"units_sold"`
	SalePricePerUnit float64     `json:"sale_price_per_unit" db:"sale_price_per_unit"`
	TotalSaleAmount  float64     `json:"total_sale_amount" db:"total_sale_amount"`
	AmountPaid       float64     `json:"amount_paid" db:"amount_paid"`
	Payments         PaymentList `json:"payments" db:"payments"`
	Notes            *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt        int64       `json:"created_at" db:"created_at"`
	UpdatedAt        int64       `json:"updated_at" db:"updated_at"`
}

// CreateMaterialEntryRequest is the request body for POST /api/materials
type CreateMaterialEntryRequest struct {
	MaterialName string  `json:"material_name"`
	Date         int64   `json:"date"`
	Units        float64 `json:"units"`
	UnitCost     float64 `json:"unit_cost"`
	Supplier     *string `json:"supplier,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdateMaterialEntryRequest is the request body for PATCH /api/materials/:id
type UpdateMaterialEntryRequest struct {
	MaterialName *string  `json:"material_name,omitempty"`
	Date         *int64   `json:"date,omitempty"`
	Units        *float64 `json:"units,omitempty"`
	UnitCost     *float64 `json:"unit_cost,omitempty"`
	Supplier     *string  `json:"supplier,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// CreateMaterialSaleRequest is the request body for POST /api/materials/:id/sales
type CreateMaterialSaleRequest struct {
	CustomerID       string  `json:"customer_id"`
	Date             int64   `json:"date"`
	UnitsSold        float64 `json:"units_sold"`
	SalePricePerUnit float64 `json:"sale_price_per_unit"`
	AmountPaid       float64 `json:"amount_paid"`
	Notes            *string `json:"notes,omitempty"`
}
