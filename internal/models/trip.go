package models

// Trip statuses
const (
	TripStatusPlanned    = "Planned"
	TripStatusInProgress = "In Progress"
	TripStatusCompleted  = "Completed"
	TripStatusCancelled  = "Cancelled"
)

// Trip is a multi-leg journey. The full route is
// [StartLocation, Stops..., EndLocation] with blank entries ignored.
//
// DriverWages and TotalDieselCost are overrides: when set (non-nil, zero
// included) they replace the sum of the corresponding per-load values.
// DriverAdvance is NOT an override — it is an additional payment on top of
// any load-level advances and payments.
type Trip struct {
	ID                string     `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	DriverID          string     `json:"driver_id" db:"driver_id"`
	TruckID           string     `json:"truck_id" db:"truck_id"`
	Status            string     `json:"status" db:"status"`
	StartLocation     string     `json:"start_location" db:"start_location"`
	EndLocation       string     `json:"end_location" db:"end_location"`
	Stops             StringList `json:"stops" db:"stops"`
	TotalDieselLitres *float64   `json:"total_diesel_litres,omitempty" db:"total_diesel_litres"`
	TotalDieselCost   *float64   `json:"total_diesel_cost,omitempty" db:"total_diesel_cost"`
	DriverWages       *float64   `json:"driver_wages,omitempty" db:"driver_wages"`
	DriverAdvance     *float64   `json:"driver_advance,omitempty" db:"driver_advance"`
	CreatedAt         int64      `json:"created_at" db:"created_at"`
	UpdatedAt         int64      `json:"updated_at" db:"updated_at"`
}

// CreateTripRequest is the request body for POST /api/trips
type CreateTripRequest struct {
	Name              string   `json:"name"`
	DriverID          string   `json:"driver_id"`
	TruckID           string   `json:"truck_id"`
	Status            string   `json:"status"`
	StartLocation     string   `json:"start_location"`
	EndLocation       string   `json:"end_location"`
	Stops             []string `json:"stops"`
	TotalDieselLitres *float64 `json:"total_diesel_litres,omitempty"`
	TotalDieselCost   *float64 `json:"total_diesel_cost,omitempty"`
	DriverWages       *float64 `json:"driver_wages,omitempty"`
	DriverAdvance     *float64 `json:"driver_advance,omitempty"`
}

// UpdateTripRequest is the request body for PATCH /api/trips/:id.
// Route fields (start, end, stops) trigger leg-load synchronization: new
// (pickup, delivery) pairs get fresh zero-financial loads, existing ones are
// left untouched. ClearDriverWages/ClearTotalDiesel/ClearDriverAdvance reset
// the corresponding override to "not set", since omitting the field just
// means "no change".
type UpdateTripRequest struct {
	Name               *string  `json:"name,omitempty"`
	DriverID           *string  `json:"driver_id,omitempty"`
	TruckID            *string  `json:"truck_id,omitempty"`
	Status             *string  `json:"status,omitempty"`
	StartLocation      *string  `json:"start_location,omitempty"`
	EndLocation        *string  `json:"end_location,omitempty"`
	Stops              []string `json:"stops,omitempty"`
	TotalDieselLitres  *float64 `json:"total_diesel_litres,omitempty"`
	TotalDieselCost    *float64 `json:"total_diesel_cost,omitempty"`
	DriverWages        *float64 `json:"driver_wages,omitempty"`
	DriverAdvance      *float64 `json:"driver_advance,omitempty"`
	ClearDriverWages   bool     `json:"clear_driver_wages,omitempty"`
	ClearTotalDiesel   bool     `json:"clear_total_diesel,omitempty"`
	ClearDriverAdvance bool     `json:"clear_driver_advance,omitempty"`
}

// AppendRoutePointRequest is the request body for POST /api/trips/:id/points
type AppendRoutePointRequest struct {
	Location string `json:"location"`
}

func ValidTripStatus(s string) bool {
	switch s {
	case TripStatusPlanned, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}
