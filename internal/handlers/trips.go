package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"truckledger-backend/internal/ledger"
	"truckledger-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TripSummary is the list-view shape: the trip plus its computed financials.
type TripSummary struct {
	models.Trip
	Financials ledger.TripFinancials `json:"financials"`
	LoadCount  int                   `json:"load_count"`
}

// TripDetail is the detail-view shape: the trip, its leg loads, financials,
// outstanding driver balance and the merged driver payment history.
type TripDetail struct {
	models.Trip
	Loads         []models.Load         `json:"loads"`
	Financials    ledger.TripFinancials `json:"financials"`
	DriverBalance float64               `json:"driver_balance"`
	DriverHistory []ledger.HistoryEntry `json:"driver_history"`
}

func GetTrips(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trips := []models.Trip{}
		query := "SELECT * FROM trips ORDER BY created_at DESC"
		args := []interface{}{}

		if status := r.URL.Query().Get("status"); status != "" {
			query = "SELECT * FROM trips WHERE status = $1 ORDER BY created_at DESC"
			args = append(args, status)
		}
		if err := db.Select(&trips, query, args...); err != nil {
			http.Error(w, "Failed to fetch trips", http.StatusInternalServerError)
			return
		}

		loads := []models.Load{}
		if err := db.Select(&loads, "SELECT * FROM loads WHERE trip_id IS NOT NULL"); err != nil {
			http.Error(w, "Failed to fetch loads", http.StatusInternalServerError)
			return
		}

		summaries := make([]TripSummary, 0, len(trips))
		for _, t := range trips {
			tripLoads := ledger.LoadsForTrip(t.ID, loads)
			summaries = append(summaries, TripSummary{
				Trip:       t,
				Financials: ledger.ComputeTripFinancials(t, tripLoads),
				LoadCount:  len(tripLoads),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	}
}

func GetTrip(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var trip models.Trip
		if err := db.Get(&trip, "SELECT * FROM trips WHERE id = $1", id); err != nil {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}

		loads := []models.Load{}
		if err := db.Select(&loads, "SELECT * FROM loads WHERE trip_id = $1 ORDER BY created_at ASC", id); err != nil {
			http.Error(w, "Failed to fetch trip loads", http.StatusInternalServerError)
			return
		}

		detail := TripDetail{
			Trip:          trip,
			Loads:         loads,
			Financials:    ledger.ComputeTripFinancials(trip, loads),
			DriverBalance: ledger.TripDriverBalance(trip, loads),
			DriverHistory: ledger.TripDriverHistory(trip, loads),
		}
		if detail.DriverHistory == nil {
			detail.DriverHistory = []ledger.HistoryEntry{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detail)
	}
}

// CreateTrip inserts the trip and one zero-financial load per route leg in a
// single transaction. A route with fewer than 2 usable points creates no
// loads, which is fine for a trip still being planned.
func CreateTrip(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTripRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Name == "" || req.DriverID == "" || req.TruckID == "" {
			http.Error(w, "Missing required fields: name, driver_id, truck_id", http.StatusBadRequest)
			return
		}
		status := req.Status
		if status == "" {
			status = models.TripStatusPlanned
		}
		if !models.ValidTripStatus(status) {
			http.Error(w, "Invalid trip status", http.StatusBadRequest)
			return
		}

		now := time.Now()
		trip := models.Trip{
			ID:                uuid.New().String(),
			Name:              req.Name,
			DriverID:          req.DriverID,
			TruckID:           req.TruckID,
			Status:            status,
			StartLocation:     req.StartLocation,
			EndLocation:       req.EndLocation,
			Stops:             models.StringList(req.Stops),
			TotalDieselLitres: req.TotalDieselLitres,
			TotalDieselCost:   req.TotalDieselCost,
			DriverWages:       req.DriverWages,
			DriverAdvance:     req.DriverAdvance,
			CreatedAt:         now.Unix(),
			UpdatedAt:         now.Unix(),
		}
		if trip.Stops == nil {
			trip.Stops = models.StringList{}
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if _, err := tx.NamedExec(`
			INSERT INTO trips (id, name, driver_id, truck_id, status, start_location, end_location, stops,
				total_diesel_litres, total_diesel_cost, driver_wages, driver_advance, created_at, updated_at)
			VALUES (:id, :name, :driver_id, :truck_id, :status, :start_location, :end_location, :stops,
				:total_diesel_litres, :total_diesel_cost, :driver_wages, :driver_advance, :created_at, :updated_at)
		`, trip); err != nil {
			http.Error(w, "Failed to create trip", http.StatusInternalServerError)
			return
		}

		legs := ledger.ExpandRoute(trip)
		createdLoads := make([]models.Load, 0, len(legs))
		for _, leg := range legs {
			load := ledger.NewLegLoad(trip, leg, now)
			if err := insertLoad(tx, load); err != nil {
				http.Error(w, "Failed to create trip loads", http.StatusInternalServerError)
				return
			}
			createdLoads = append(createdLoads, load)
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Trip created: %s (%d legs)", trip.Name, len(createdLoads))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(TripDetail{
			Trip:          trip,
			Loads:         createdLoads,
			Financials:    ledger.ComputeTripFinancials(trip, createdLoads),
			DriverBalance: ledger.TripDriverBalance(trip, createdLoads),
			DriverHistory: []ledger.HistoryEntry{},
		})
	}
}

// applyTripEdit copies the request fields that leg generation reads onto the
// locally fetched trip, so new leg loads carry the same driver, truck and
// route as the row the UPDATE persists.
func applyTripEdit(trip *models.Trip, req models.UpdateTripRequest) {
	if req.DriverID != nil {
		trip.DriverID = *req.DriverID
	}
	if req.TruckID != nil {
		trip.TruckID = *req.TruckID
	}
	if req.StartLocation != nil {
		trip.StartLocation = *req.StartLocation
	}
	if req.EndLocation != nil {
		trip.EndLocation = *req.EndLocation
	}
	if req.Stops != nil {
		trip.Stops = models.StringList(req.Stops)
	}
}

// UpdateTrip applies the partial update, then synchronizes leg loads against
// the edited route: every (pickup, delivery) pair that has no load yet gets a
// fresh one. Existing loads are never touched, and loads whose leg fell out
// of the route stay as historical records.
func UpdateTrip(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateTripRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Status != nil && !models.ValidTripStatus(*req.Status) {
			http.Error(w, "Invalid trip status", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		var trip models.Trip
		if err := tx.Get(&trip, "SELECT * FROM trips WHERE id = $1 FOR UPDATE", id); err != nil {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}

		applyTripEdit(&trip, req)

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
		if req.DriverID != nil {
			addField("driver_id", *req.DriverID)
		}
		if req.TruckID != nil {
			addField("truck_id", *req.TruckID)
		}
		if req.Status != nil {
			addField("status", *req.Status)
		}
		if req.StartLocation != nil {
			addField("start_location", *req.StartLocation)
		}
		if req.EndLocation != nil {
			addField("end_location", *req.EndLocation)
		}
		if req.Stops != nil {
			addField("stops", models.StringList(req.Stops))
		}

		// Overrides: an explicit clear wins over a new value in the same
		// request, which should not happen from a sane client anyway.
		if req.ClearDriverWages {
			addField("driver_wages", nil)
		} else if req.DriverWages != nil {
			addField("driver_wages", *req.DriverWages)
		}
		if req.ClearTotalDiesel {
			addField("total_diesel_cost", nil)
			addField("total_diesel_litres", nil)
		} else {
			if req.TotalDieselCost != nil {
				addField("total_diesel_cost", *req.TotalDieselCost)
			}
			if req.TotalDieselLitres != nil {
				addField("total_diesel_litres", *req.TotalDieselLitres)
			}
		}
		if req.ClearDriverAdvance {
			addField("driver_advance", nil)
		} else if req.DriverAdvance != nil {
			addField("driver_advance", *req.DriverAdvance)
		}

		argCount++
		query := fmt.Sprintf("UPDATE trips SET %s WHERE id = $%d", setClause, argCount)
		args = append(args, id)

		if _, err := tx.Exec(query, args...); err != nil {
			http.Error(w, "Failed to update trip", http.StatusInternalServerError)
			return
		}

		existing := []models.Load{}
		if err := tx.Select(&existing, "SELECT * FROM loads WHERE trip_id = $1", id); err != nil {
			http.Error(w, "Failed to fetch trip loads", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		newLegs := 0
		for _, leg := range ledger.MissingLegs(trip, existing) {
			load := ledger.NewLegLoad(trip, leg, now)
			if err := insertLoad(tx, load); err != nil {
				http.Error(w, "Failed to create trip loads", http.StatusInternalServerError)
				return
			}
			newLegs++
		}

		var updated models.Trip
		if err := tx.Get(&updated, "SELECT * FROM trips WHERE id = $1", id); err != nil {
			http.Error(w, "Failed to fetch updated trip", http.StatusInternalServerError)
			return
		}
		loads := []models.Load{}
		if err := tx.Select(&loads, "SELECT * FROM loads WHERE trip_id = $1 ORDER BY created_at ASC", id); err != nil {
			http.Error(w, "Failed to fetch trip loads", http.StatusInternalServerError)
			return
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		if newLegs > 0 {
			log.Printf("✅ Trip %s route updated, %d new leg loads", id, newLegs)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TripDetail{
			Trip:          updated,
			Loads:         loads,
			Financials:    ledger.ComputeTripFinancials(updated, loads),
			DriverBalance: ledger.TripDriverBalance(updated, loads),
			DriverHistory: ledger.TripDriverHistory(updated, loads),
		})
	}
}

// AppendTripRoutePoint extends a trip past its current end: the old end
// becomes a stop, the new point becomes the end, and exactly one new leg load
// covers the added segment.
func AppendTripRoutePoint(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.AppendRoutePointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		var trip models.Trip
		if err := tx.Get(&trip, "SELECT * FROM trips WHERE id = $1 FOR UPDATE", id); err != nil {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}

		leg, ok := ledger.AppendRoutePoint(&trip, req.Location)
		if !ok {
			http.Error(w, "Location is required", http.StatusBadRequest)
			return
		}

		now := time.Now()
		trip.UpdatedAt = now.Unix()
		if _, err := tx.Exec(
			"UPDATE trips SET stops = $1, end_location = $2, updated_at = $3 WHERE id = $4",
			trip.Stops, trip.EndLocation, trip.UpdatedAt, id,
		); err != nil {
			http.Error(w, "Failed to update trip", http.StatusInternalServerError)
			return
		}

		load := ledger.NewLegLoad(trip, leg, now)
		if err := insertLoad(tx, load); err != nil {
			http.Error(w, "Failed to create leg load", http.StatusInternalServerError)
			return
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Trip %s extended: %s -> %s", id, leg.Pickup, leg.Delivery)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"trip": trip,
			"load": load,
		})
	}
}

// AddTripDriverPayment records a settlement payment against a trip. The
// payment is appended to the trip's first load; a trip that somehow has no
// loads gets the amount added to its trip-level advance instead, so the
// money is never lost.
func AddTripDriverPayment(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.AddPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Amount <= 0 {
			http.Error(w, "Payment amount must be positive", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		var trip models.Trip
		if err := tx.Get(&trip, "SELECT * FROM trips WHERE id = $1 FOR UPDATE", id); err != nil {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}

		loads := []models.Load{}
		if err := tx.Select(&loads, "SELECT * FROM loads WHERE trip_id = $1 ORDER BY created_at ASC", id); err != nil {
			http.Error(w, "Failed to fetch trip loads", http.StatusInternalServerError)
			return
		}

		balanceBefore := ledger.TripDriverBalance(trip, loads)
		now := time.Now().Unix()

		payment := models.Payment{
			Amount: req.Amount,
			Date:   req.Date,
			Method: req.Method,
			Photo:  req.Photo,
		}
		if payment.Date == 0 {
			payment.Date = now
		}
		if payment.Method == "" {
			payment.Method = "Cash"
		}

		if len(loads) > 0 {
			first := loads[0]
			first.DriverPayments = append(first.DriverPayments, payment)
			if _, err := tx.Exec(
				"UPDATE loads SET driver_payments = $1, updated_at = $2 WHERE id = $3",
				first.DriverPayments, now, first.ID,
			); err != nil {
				http.Error(w, "Failed to record payment", http.StatusInternalServerError)
				return
			}
			loads[0] = first
		} else {
			advance := req.Amount
			if trip.DriverAdvance != nil {
				advance += *trip.DriverAdvance
			}
			trip.DriverAdvance = &advance
			if _, err := tx.Exec(
				"UPDATE trips SET driver_advance = $1, updated_at = $2 WHERE id = $3",
				advance, now, id,
			); err != nil {
				http.Error(w, "Failed to record payment", http.StatusInternalServerError)
				return
			}
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		resp := map[string]interface{}{
			"balance": ledger.TripDriverBalance(trip, loads),
		}
		if req.Amount > balanceBefore {
			resp["warning"] = "Payment exceeds the outstanding trip balance"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}
}
