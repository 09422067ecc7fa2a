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

// MaterialEntryDetail is a material purchase plus its sales and remaining stock.
type MaterialEntryDetail struct {
	models.MaterialEntry
	Stock float64               `json:"stock"`
	Sales []models.MaterialSale `json:"sales"`
}

func GetMaterialEntries(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := []models.MaterialEntry{}
		if err := db.Select(&entries, "SELECT * FROM material_entries ORDER BY date DESC"); err != nil {
			http.Error(w, "Failed to fetch material entries", http.StatusInternalServerError)
			return
		}
		sales := []models.MaterialSale{}
		if err := db.Select(&sales, "SELECT * FROM material_sales"); err != nil {
			http.Error(w, "Failed to fetch material sales", http.StatusInternalServerError)
			return
		}

		details := make([]MaterialEntryDetail, 0, len(entries))
		for _, e := range entries {
			entrySales := []models.MaterialSale{}
			for _, s := range sales {
				if s.MaterialEntryID == e.ID {
					entrySales = append(entrySales, s)
				}
			}
			details = append(details, MaterialEntryDetail{
				MaterialEntry: e,
				Stock:         ledger.MaterialStock(e, sales),
				Sales:         entrySales,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(details)
	}
}

func GetMaterialEntry(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var entry models.MaterialEntry
		if err := db.Get(&entry, "SELECT * FROM material_entries WHERE id = $1", id); err != nil {
			http.Error(w, "Material entry not found", http.StatusNotFound)
			return
		}
		sales := []models.MaterialSale{}
		if err := db.Select(&sales, "SELECT * FROM material_sales WHERE material_entry_id = $1 ORDER BY date DESC", id); err != nil {
			http.Error(w, "Failed to fetch material sales", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(MaterialEntryDetail{
			MaterialEntry: entry,
			Stock:         ledger.MaterialStock(entry, sales),
			Sales:         sales,
		})
	}
}

func CreateMaterialEntry(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateMaterialEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.MaterialName == "" || req.Units <= 0 {
			http.Error(w, "Missing required fields: material_name, units", http.StatusBadRequest)
			return
		}

		now := time.Now().Unix()
		date := req.Date
		if date == 0 {
			date = now
		}
		entry := models.MaterialEntry{
			ID:           uuid.New().String(),
			MaterialName: req.MaterialName,
			Date:         date,
			Units:        req.Units,
			UnitCost:     req.UnitCost,
			TotalCost:    req.Units * req.UnitCost,
			Supplier:     req.Supplier,
			Notes:        req.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		_, err := db.NamedExec(`
			INSERT INTO material_entries (id, material_name, date, units, unit_cost, total_cost, supplier, notes, created_at, updated_at)
			VALUES (:id, :material_name, :date, :units, :unit_cost, :total_cost, :supplier, :notes, :created_at, :updated_at)
		`, entry)
		if err != nil {
			http.Error(w, "Failed to create material entry", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	}
}

func UpdateMaterialEntry(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateMaterialEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var entry models.MaterialEntry
		if err := db.Get(&entry, "SELECT * FROM material_entries WHERE id = $1", id); err != nil {
			http.Error(w, "Material entry not found", http.StatusNotFound)
			return
		}

		if req.MaterialName != nil {
			entry.MaterialName = *req.MaterialName
		}
		if req.Date != nil {
			entry.Date = *req.Date
		}
		if req.Units != nil {
			entry.Units = *req.Units
		}
		if req.UnitCost != nil {
			entry.UnitCost = *req.UnitCost
		}
		if req.Supplier != nil {
			entry.Supplier = req.Supplier
		}
		if req.Notes != nil {
			entry.Notes = req.Notes
		}
		entry.TotalCost = entry.Units * entry.UnitCost
		entry.UpdatedAt = time.Now().Unix()

		_, err := db.NamedExec(`
			UPDATE material_entries
			SET material_name = :material_name, date = :date, units = :units, unit_cost = :unit_cost,
				total_cost = :total_cost, supplier = :supplier, notes = :notes, updated_at = :updated_at
			WHERE id = :id
		`, entry)
		if err != nil {
			http.Error(w, "Failed to update material entry", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entry)
	}
}

func GetMaterialSales(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID := chi.URLParam(r, "id")

		var exists bool
		if err := db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM material_entries WHERE id = $1)", entryID); err != nil || !exists {
			http.Error(w, "Material entry not found", http.StatusNotFound)
			return
		}

		sales := []models.MaterialSale{}
		if err := db.Select(&sales, "SELECT * FROM material_sales WHERE material_entry_id = $1 ORDER BY date DESC", entryID); err != nil {
			http.Error(w, "Failed to fetch material sales", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sales)
	}
}

// CreateMaterialSale sells units out of an entry. Selling more than the
// remaining stock is rejected outright; stock cannot go negative.
func CreateMaterialSale(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID := chi.URLParam(r, "id")

		var req models.CreateMaterialSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.CustomerID == "" || req.UnitsSold <= 0 {
			http.Error(w, "Missing required fields: customer_id, units_sold", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		var entry models.MaterialEntry
		if err := tx.Get(&entry, "SELECT * FROM material_entries WHERE id = $1 FOR UPDATE", entryID); err != nil {
			http.Error(w, "Material entry not found", http.StatusNotFound)
			return
		}
		sales := []models.MaterialSale{}
		if err := tx.Select(&sales, "SELECT * FROM material_sales WHERE material_entry_id = $1", entryID); err != nil {
			http.Error(w, "Failed to fetch material sales", http.StatusInternalServerError)
			return
		}

		if req.UnitsSold > ledger.MaterialStock(entry, sales) {
			http.Error(w, "Not enough stock remaining", http.StatusBadRequest)
			return
		}

		now := time.Now().Unix()
		date := req.Date
		if date == 0 {
			date = now
		}
		sale := models.MaterialSale{
			ID:               uuid.New().String(),
			MaterialEntryID:  entryID,
			CustomerID:       req.CustomerID,
			Date:             date,
			UnitsSold:        req.UnitsSold,
			SalePricePerUnit: req.SalePricePerUnit,
			TotalSaleAmount:  req.UnitsSold * req.SalePricePerUnit,
			AmountPaid:       req.AmountPaid,
			Payments:         models.PaymentList{},
			Notes:            req.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if _, err := tx.NamedExec(`
			INSERT INTO material_sales (id, material_entry_id, customer_id, date, units_sold,
				sale_price_per_unit, total_sale_amount, amount_paid, payments, notes, created_at, updated_at)
			VALUES (:id, :material_entry_id, :customer_id, :date, :units_sold,
				:sale_price_per_unit, :total_sale_amount, :amount_paid, :payments, :notes, :created_at, :updated_at)
		`, sale); err != nil {
			http.Error(w, "Failed to create material sale", http.StatusInternalServerError)
			return
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(sale)
	}
}

// AddMaterialSalePayment appends a payment to a sale's trail. Overpaying is
// allowed but flagged, same policy as load payments.
func AddMaterialSalePayment(db *sqlx.DB) http.HandlerFunc {
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

		var sale models.MaterialSale
		if err := tx.Get(&sale, "SELECT * FROM material_sales WHERE id = $1 FOR UPDATE", id); err != nil {
			http.Error(w, "Material sale not found", http.StatusNotFound)
			return
		}

		balanceBefore := ledger.MaterialSaleBalance(sale)
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
		sale.Payments = append(sale.Payments, payment)
		sale.UpdatedAt = now

		if _, err := tx.Exec(
			"UPDATE material_sales SET payments = $1, updated_at = $2 WHERE id = $3",
			sale.Payments, now, id,
		); err != nil {
			http.Error(w, "Failed to record payment", http.StatusInternalServerError)
			return
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		resp := map[string]interface{}{
			"sale":    sale,
			"balance": ledger.MaterialSaleBalance(sale),
		}
		if req.Amount > balanceBefore {
			resp["warning"] = fmt.Sprintf("Payment exceeds the outstanding balance of %.2f", balanceBefore)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}
}
