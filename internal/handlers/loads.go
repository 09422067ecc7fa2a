package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"truckledger-backend/internal/ledger"
	"truckledger-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// insertLoad writes a load row. Works inside and outside a transaction.
func insertLoad(e sqlx.Ext, l models.Load) error {
	_, err := sqlx.NamedExec(e, `
		INSERT INTO loads (id, customer_id, driver_id, truck_id, trip_id,
			pickup_location, delivery_location, pickup_datetime, delivery_datetime,
			total_amount, customer_advance, customer_advance_payment_method, customer_payments,
			driver_wages, diesel_price, driver_advance, driver_advance_payment_method,
			fastag_charges, other_expenses, driver_payments,
			status, parts, notes, photos, tag, created_at, updated_at)
		VALUES (:id, :customer_id, :driver_id, :truck_id, :trip_id,
			:pickup_location, :delivery_location, :pickup_datetime, :delivery_datetime,
			:total_amount, :customer_advance, :customer_advance_payment_method, :customer_payments,
			:driver_wages, :diesel_price, :driver_advance, :driver_advance_payment_method,
			:fastag_charges, :other_expenses, :driver_payments,
			:status, :parts, :notes, :photos, :tag, :created_at, :updated_at)
	`, l)
	return err
}

// LoadDetail is the detail-view shape: the load plus everything the ledger
// derives from it.
type LoadDetail struct {
	models.Load
	CustomerBalance float64               `json:"customer_balance"`
	DriverBalance   float64               `json:"driver_balance"`
	NetProfit       float64               `json:"net_profit"`
	CustomerHistory []ledger.HistoryEntry `json:"customer_history"`
	DriverHistory   []ledger.HistoryEntry `json:"driver_history"`
}

func toLoadDetail(l models.Load) LoadDetail {
	d := LoadDetail{
		Load:            l,
		CustomerBalance: ledger.CustomerBalance(l),
		DriverBalance:   ledger.DriverBalanceForLoad(l),
		NetProfit:       ledger.NetProfit(l),
		CustomerHistory: ledger.LoadCustomerHistory(l),
		DriverHistory:   ledger.LoadDriverHistory(l),
	}
	if d.CustomerHistory == nil {
		d.CustomerHistory = []ledger.HistoryEntry{}
	}
	if d.DriverHistory == nil {
		d.DriverHistory = []ledger.HistoryEntry{}
	}
	return d
}

// GetLoads lists loads, filterable by customer_id, driver_id, truck_id,
// trip_id, status, standalone=true, location substrings and a pickup date
// range (from/to, unix seconds).
func GetLoads(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := "SELECT * FROM loads WHERE 1=1"
		args := []interface{}{}
		argCount := 0

		addFilter := func(clause string, value interface{}) {
			argCount++
			query += fmt.Sprintf(" AND %s $%d", clause, argCount)
			args = append(args, value)
		}

		q := r.URL.Query()
		if v := q.Get("customer_id"); v != "" {
			addFilter("customer_id =", v)
		}
		if v := q.Get("driver_id"); v != "" {
			addFilter("driver_id =", v)
		}
		if v := q.Get("truck_id"); v != "" {
			addFilter("truck_id =", v)
		}
		if v := q.Get("trip_id"); v != "" {
			addFilter("trip_id =", v)
		}
		if v := q.Get("status"); v != "" {
			addFilter("status =", v)
		}
		if q.Get("standalone") == "true" {
			query += " AND trip_id IS NULL"
		}
		if v := q.Get("pickup_location"); v != "" {
			addFilter("pickup_location ILIKE", "%"+v+"%")
		}
		if v := q.Get("delivery_location"); v != "" {
			addFilter("delivery_location ILIKE", "%"+v+"%")
		}
		if v := q.Get("from"); v != "" {
			if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
				addFilter("pickup_datetime >=", ts)
			}
		}
		if v := q.Get("to"); v != "" {
			if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
				addFilter("pickup_datetime <=", ts)
			}
		}

		query += " ORDER BY pickup_datetime DESC"

		loads := []models.Load{}
		if err := db.Select(&loads, query, args...); err != nil {
			http.Error(w, "Failed to fetch loads", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loads)
	}
}

func GetLoad(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var load models.Load
		if err := db.Get(&load, "SELECT * FROM loads WHERE id = $1", id); err != nil {
			http.Error(w, "Load not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toLoadDetail(load))
	}
}

func CreateLoad(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateLoadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.DriverID == "" || req.TruckID == "" {
			http.Error(w, "Missing required fields: driver_id, truck_id", http.StatusBadRequest)
			return
		}
		status := req.Status
		if status == "" {
			status = models.LoadStatusActive
		}
		if !models.ValidLoadStatus(status) {
			http.Error(w, "Invalid load status", http.StatusBadRequest)
			return
		}
		if req.TripID != nil && *req.TripID != "" {
			var exists bool
			if err := db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM trips WHERE id = $1)", *req.TripID); err != nil || !exists {
				http.Error(w, "Trip not found", http.StatusBadRequest)
				return
			}
		}

		now := time.Now().Unix()
		pickup := req.PickupDateTime
		if pickup == 0 {
			pickup = now
		}

		load := models.Load{
			ID:                           uuid.New().String(),
			CustomerID:                   req.CustomerID,
			DriverID:                     req.DriverID,
			TruckID:                      req.TruckID,
			TripID:                       req.TripID,
			PickupLocation:               req.PickupLocation,
			DeliveryLocation:             req.DeliveryLocation,
			PickupDateTime:               pickup,
			DeliveryDateTime:             req.DeliveryDateTime,
			TotalAmount:                  req.TotalAmount,
			CustomerAdvance:              req.CustomerAdvance,
			CustomerAdvancePaymentMethod: req.CustomerAdvancePaymentMethod,
			CustomerPayments:             models.PaymentList{},
			DriverWages:                  req.DriverWages,
			DieselPrice:                  req.DieselPrice,
			DriverAdvance:                req.DriverAdvance,
			DriverAdvancePaymentMethod:   req.DriverAdvancePaymentMethod,
			FastagCharges:                req.FastagCharges,
			OtherExpenses:                models.ExpenseList(req.OtherExpenses),
			DriverPayments:               models.PaymentList{},
			Status:                       status,
			Parts:                        models.PartList(req.Parts),
			Notes:                        req.Notes,
			Photos:                       models.StringList(req.Photos),
			Tag:                          req.Tag,
			CreatedAt:                    now,
			UpdatedAt:                    now,
		}
		if load.OtherExpenses == nil {
			load.OtherExpenses = models.ExpenseList{}
		}
		if load.Parts == nil {
			load.Parts = models.PartList{}
		}
		if load.Photos == nil {
			load.Photos = models.StringList{}
		}

		if err := insertLoad(db, load); err != nil {
			http.Error(w, "Failed to create load", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toLoadDetail(load))
	}
}

// UpdateLoad applies a partial update. Payment lists are not writable here;
// they grow only through the payment endpoints.
func UpdateLoad(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateLoadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Status != nil && !models.ValidLoadStatus(*req.Status) {
			http.Error(w, "Invalid load status", http.StatusBadRequest)
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

		if req.CustomerID != nil {
			addField("customer_id", *req.CustomerID)
		}
		if req.DriverID != nil {
			addField("driver_id", *req.DriverID)
		}
		if req.TruckID != nil {
			addField("truck_id", *req.TruckID)
		}
		if req.PickupLocation != nil {
			addField("pickup_location", *req.PickupLocation)
		}
		if req.DeliveryLocation != nil {
			addField("delivery_location", *req.DeliveryLocation)
		}
		if req.PickupDateTime != nil {
			addField("pickup_datetime", *req.PickupDateTime)
		}
		if req.DeliveryDateTime != nil {
			addField("delivery_datetime", *req.DeliveryDateTime)
		}
		if req.TotalAmount != nil {
			addField("total_amount", *req.TotalAmount)
		}
		if req.CustomerAdvance != nil {
			addField("customer_advance", *req.CustomerAdvance)
		}
		if req.CustomerAdvancePaymentMethod != nil {
			addField("customer_advance_payment_method", *req.CustomerAdvancePaymentMethod)
		}
		if req.DriverWages != nil {
			addField("driver_wages", *req.DriverWages)
		}
		if req.DieselPrice != nil {
			addField("diesel_price", *req.DieselPrice)
		}
		if req.DriverAdvance != nil {
			addField("driver_advance", *req.DriverAdvance)
		}
		if req.DriverAdvancePaymentMethod != nil {
			addField("driver_advance_payment_method", *req.DriverAdvancePaymentMethod)
		}
		if req.FastagCharges != nil {
			addField("fastag_charges", *req.FastagCharges)
		}
		if req.OtherExpenses != nil {
			addField("other_expenses", models.ExpenseList(req.OtherExpenses))
		}
		if req.Status != nil {
			addField("status", *req.Status)
		}
		if req.Parts != nil {
			addField("parts", models.PartList(req.Parts))
		}
		if req.Notes != nil {
			addField("notes", *req.Notes)
		}
		if req.Photos != nil {
			addField("photos", models.StringList(req.Photos))
		}
		if req.Tag != nil {
			addField("tag", *req.Tag)
		}

		argCount++
		query := fmt.Sprintf("UPDATE loads SET %s WHERE id = $%d", setClause, argCount)
		args = append(args, id)

		result, err := db.Exec(query, args...)
		if err != nil {
			http.Error(w, "Failed to update load", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			http.Error(w, "Load not found", http.StatusNotFound)
			return
		}

		var load models.Load
		if err := db.Get(&load, "SELECT * FROM loads WHERE id = $1", id); err != nil {
			http.Error(w, "Failed to fetch updated load", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toLoadDetail(load))
	}
}

// AddLoadCustomerPayment appends a customer payment to a load. Overpaying is
// allowed but flagged with a warning in the response.
func AddLoadCustomerPayment(db *sqlx.DB) http.HandlerFunc {
	return addLoadPayment(db, "customer_payments",
		func(l *models.Load) *models.PaymentList { return &l.CustomerPayments },
		ledger.CustomerBalance,
		"Payment exceeds the customer's outstanding balance")
}

// AddLoadDriverPayment appends a driver payment to a load, same overpayment
// policy as the customer side.
func AddLoadDriverPayment(db *sqlx.DB) http.HandlerFunc {
	return addLoadPayment(db, "driver_payments",
		func(l *models.Load) *models.PaymentList { return &l.DriverPayments },
		ledger.DriverBalanceForLoad,
		"Payment exceeds the driver's outstanding balance")
}

func addLoadPayment(db *sqlx.DB, column string, list func(*models.Load) *models.PaymentList, balance func(models.Load) float64, overpayMsg string) http.HandlerFunc {
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

		var load models.Load
		if err := tx.Get(&load, "SELECT * FROM loads WHERE id = $1 FOR UPDATE", id); err != nil {
			http.Error(w, "Load not found", http.StatusNotFound)
			return
		}

		balanceBefore := balance(load)
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

		payments := list(&load)
		*payments = append(*payments, payment)

		query := fmt.Sprintf("UPDATE loads SET %s = $1, updated_at = $2 WHERE id = $3", column)
		if _, err := tx.Exec(query, *payments, now, id); err != nil {
			http.Error(w, "Failed to record payment", http.StatusInternalServerError)
			return
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		load.UpdatedAt = now
		detail := toLoadDetail(load)
		resp := map[string]interface{}{"load": detail}
		if req.Amount > balanceBefore {
			resp["warning"] = overpayMsg
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}
}
