package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"truckledger-backend/internal/ledger"
	"truckledger-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func GetDrivers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drivers := []models.Driver{}
		if err := db.Select(&drivers, "SELECT * FROM drivers ORDER BY name ASC"); err != nil {
			http.Error(w, "Failed to fetch drivers", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(drivers)
	}
}

func GetDriver(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var driver models.Driver
		if err := db.Get(&driver, "SELECT * FROM drivers WHERE id = $1", id); err != nil {
			http.Error(w, "Driver not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(driver)
	}
}

func CreateDriver(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateDriverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Name == "" || req.Phone == "" {
			http.Error(w, "Missing required fields: name, phone", http.StatusBadRequest)
			return
		}

		now := time.Now().Unix()
		driver := models.Driver{
			ID:        uuid.New().String(),
			Name:      req.Name,
			Phone:     req.Phone,
			License:   req.License,
			Photo:     req.Photo,
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err := db.NamedExec(`
			INSERT INTO drivers (id, name, phone, license, photo, created_at, updated_at)
			VALUES (:id, :name, :phone, :license, :photo, :created_at, :updated_at)
		`, driver)
		if err != nil {
			http.Error(w, "Failed to create driver", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(driver)
	}
}

func UpdateDriver(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateDriverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		setClause := "updated_at = $1"
		args := []interface{}{time.Now().Unix()}
		argCount := 1

		addField := func(column string, value interface{}) {
			argCount++
			setClause += fmt.Sprintf(", %s = $%d", column, argCount)
			args = append(args, value)
		}

		if req.Name != nil {
			addField("name", *req.Name)
		}
		if req.Phone != nil {
			addField("phone", *req.Phone)
		}
		if req.License != nil {
			addField("license", *req.License)
		}
		if req.Photo != nil {
			addField("photo", *req.Photo)
		}

		argCount++
		query := fmt.Sprintf("UPDATE drivers SET %s WHERE id = $%d", setClause, argCount)
		args = append(args, id)

		result, err := db.Exec(query, args...)
		if err != nil {
			http.Error(w, "Failed to update driver", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			http.Error(w, "Driver not found", http.StatusNotFound)
			return
		}

		var driver models.Driver
		if err := db.Get(&driver, "SELECT * FROM drivers WHERE id = $1", id); err != nil {
			http.Error(w, "Failed to fetch updated driver", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(driver)
	}
}

// DriverBalanceResponse breaks down what the business owes a driver across
// standalone loads and trips.
type DriverBalanceResponse struct {
	DriverID        string              `json:"driver_id"`
	Balance         float64             `json:"balance"`
	StandaloneLoads []DriverLoadBalance `json:"standalone_loads"`
	Trips           []DriverTripBalance `json:"trips"`
}

type DriverLoadBalance struct {
	LoadID           string  `json:"load_id"`
	PickupLocation   string  `json:"pickup_location"`
	DeliveryLocation string  `json:"delivery_location"`
	Wages            float64 `json:"wages"`
	Paid             float64 `json:"paid"`
	Balance          float64 `json:"balance"`
}

type DriverTripBalance struct {
	TripID  string  `json:"trip_id"`
	Name    string  `json:"name"`
	Wages   float64 `json:"wages"`
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

// GetDriverBalance returns the aggregate amount owed to a driver. Loads that
// belong to a trip are counted through the trip, never on their own, and
// cancelled standalone loads are excluded.
func GetDriverBalance(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var driver models.Driver
		if err := db.Get(&driver, "SELECT * FROM drivers WHERE id = $1", id); err != nil {
			http.Error(w, "Driver not found", http.StatusNotFound)
			return
		}

		loads := []models.Load{}
		if err := db.Select(&loads, "SELECT * FROM loads WHERE driver_id = $1", id); err != nil {
			http.Error(w, "Failed to fetch loads", http.StatusInternalServerError)
			return
		}
		trips := []models.Trip{}
		if err := db.Select(&trips, "SELECT * FROM trips WHERE driver_id = $1", id); err != nil {
			http.Error(w, "Failed to fetch trips", http.StatusInternalServerError)
			return
		}

		resp := DriverBalanceResponse{
			DriverID:        id,
			Balance:         ledger.DriverAggregateBalance(id, loads, trips),
			StandaloneLoads: []DriverLoadBalance{},
			Trips:           []DriverTripBalance{},
		}

		for _, l := range loads {
			if !l.IsStandalone() || l.Status == models.LoadStatusCancelled {
				continue
			}
			resp.StandaloneLoads = append(resp.StandaloneLoads, DriverLoadBalance{
				LoadID:           l.ID,
				PickupLocation:   l.PickupLocation,
				DeliveryLocation: l.DeliveryLocation,
				Wages:            l.DriverWages,
				Paid:             ledger.DriverPaidForLoad(l),
				Balance:          ledger.DriverBalanceForLoad(l),
			})
		}

		for _, t := range trips {
			tripLoads := ledger.LoadsForTrip(t.ID, loads)
			resp.Trips = append(resp.Trips, DriverTripBalance{
				TripID:  t.ID,
				Name:    t.Name,
				Wages:   ledger.TripWages(t, tripLoads),
				Paid:    ledger.TripDriverPaid(t, tripLoads),
				Balance: ledger.TripDriverBalance(t, tripLoads),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
