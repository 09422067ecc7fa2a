package handlers

import (
	"encoding/json"
	"net/http"

	"truckledger-backend/internal/ledger"
	"truckledger-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// DashboardResponse is the home-screen summary.
type DashboardResponse struct {
	TruckCount           int     `json:"truck_count"`
	DriverCount          int     `json:"driver_count"`
	CustomerCount        int     `json:"customer_count"`
	ActiveLoads          int     `json:"active_loads"`
	ActiveTrips          int     `json:"active_trips"`
	PendingFromCustomers float64 `json:"pending_from_customers"`
	OwedToDrivers        float64 `json:"owed_to_drivers"`
}

// GetDashboard computes the fleet counts and the two headline money figures.
// Owed-to-drivers uses the same aggregate as the driver balance screen, so
// trip wage overrides are respected and both numbers always agree.
func GetDashboard(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp DashboardResponse

		counts := []struct {
			query string
			dest  *int
		}{
			{"SELECT COUNT(*) FROM trucks", &resp.TruckCount},
			{"SELECT COUNT(*) FROM drivers", &resp.DriverCount},
			{"SELECT COUNT(*) FROM customers", &resp.CustomerCount},
		}
		for _, c := range counts {
			if err := db.Get(c.dest, c.query); err != nil {
				http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
				return
			}
		}

		loads := []models.Load{}
		if err := db.Select(&loads, "SELECT * FROM loads"); err != nil {
			http.Error(w, "Failed to fetch loads", http.StatusInternalServerError)
			return
		}
		trips := []models.Trip{}
		if err := db.Select(&trips, "SELECT * FROM trips"); err != nil {
			http.Error(w, "Failed to fetch trips", http.StatusInternalServerError)
			return
		}

		for _, l := range loads {
			if l.Status == models.LoadStatusActive {
				resp.ActiveLoads++
			}
			if l.Status != models.LoadStatusCancelled {
				resp.PendingFromCustomers += ledger.CustomerBalance(l)
			}
		}
		for _, t := range trips {
			if t.Status == models.TripStatusInProgress {
				resp.ActiveTrips++
			}
		}

		driverIDs := map[string]bool{}
		for _, l := range loads {
			driverIDs[l.DriverID] = true
		}
		for _, t := range trips {
			driverIDs[t.DriverID] = true
		}
		for id := range driverIDs {
			resp.OwedToDrivers += ledger.DriverAggregateBalance(id, loads, trips)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
