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

func GetCustomers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers := []models.Customer{}
		if err := db.Select(&customers, "SELECT * FROM customers ORDER BY is_starred DESC, name ASC"); err != nil {
			http.Error(w, "Failed to fetch customers", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(customers)
	}
}

func GetCustomer(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var customer models.Customer
		if err := db.Get(&customer, "SELECT * FROM customers WHERE id = $1", id); err != nil {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(customer)
	}
}

func CreateCustomer(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Name == "" {
			http.Error(w, "Customer name is required", http.StatusBadRequest)
			return
		}

		starred := false
		if req.IsStarred != nil {
			starred = *req.IsStarred
		}

		now := time.Now().Unix()
		customer := models.Customer{
			ID:          uuid.New().String(),
			Name:        req.Name,
			Phone:       req.Phone,
			IsTemporary: req.IsTemporary,
			Village:     req.Village,
			CompanyName: req.CompanyName,
			IsStarred:   starred,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		_, err := db.NamedExec(`
			INSERT INTO customers (id, name, phone, is_temporary, village, company_name, is_starred, created_at, updated_at)
			VALUES (:id, :name, :phone, :is_temporary, :village, :company_name, :is_starred, :created_at, :updated_at)
		`, customer)
		if err != nil {
			http.Error(w, "Failed to create customer", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(customer)
	}
}

func UpdateCustomer(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateCustomerRequest
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
		if req.IsTemporary != nil {
			addField("is_temporary", *req.IsTemporary)
		}
		if req.Village != nil {
			addField("village", *req.Village)
		}
		if req.CompanyName != nil {
			addField("company_name", *req.CompanyName)
		}
		if req.IsStarred != nil {
			addField("is_starred", *req.IsStarred)
		}

		argCount++
		query := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d", setClause, argCount)
		args = append(args, id)

		result, err := db.Exec(query, args...)
		if err != nil {
			http.Error(w, "Failed to update customer", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}

		var customer models.Customer
		if err := db.Get(&customer, "SELECT * FROM customers WHERE id = $1", id); err != nil {
			http.Error(w, "Failed to fetch updated customer", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(customer)
	}
}

// CustomerBalanceResponse breaks down what a customer owes across their
// non-cancelled loads, plus any outstanding material-sale balance.
type CustomerBalanceResponse struct {
	CustomerID      string                `json:"customer_id"`
	Balance         float64               `json:"balance"`
	MaterialBalance float64               `json:"material_balance"`
	Loads           []CustomerLoadBalance `json:"loads"`
}

type CustomerLoadBalance struct {
	LoadID           string  `json:"load_id"`
	PickupLocation   string  `json:"pickup_location"`
	DeliveryLocation string  `json:"delivery_location"`
	TotalAmount      float64 `json:"total_amount"`
	Paid             float64 `json:"paid"`
	Balance          float64 `json:"balance"`
}

// GetCustomerMaterialBalance returns what a customer owes on material sales
// alone, with the per-sale breakdown. Kept separate from the load balance.
func GetCustomerMaterialBalance(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var customer models.Customer
		if err := db.Get(&customer, "SELECT * FROM customers WHERE id = $1", id); err != nil {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}

		sales := []models.MaterialSale{}
		if err := db.Select(&sales, "SELECT * FROM material_sales WHERE customer_id = $1 ORDER BY date DESC", id); err != nil {
			http.Error(w, "Failed to fetch material sales", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"customer_id": id,
			"balance":     ledger.CustomerMaterialBalance(id, sales),
			"sales":       sales,
		})
	}
}

// GetCustomerBalance returns the aggregate amount a customer still owes.
// Cancelled loads are excluded from the total but a cancelled load's own
// balance stays visible on the load itself.
func GetCustomerBalance(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var customer models.Customer
		if err := db.Get(&customer, "SELECT * FROM customers WHERE id = $1", id); err != nil {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}

		loads := []models.Load{}
		if err := db.Select(&loads, "SELECT * FROM loads WHERE customer_id = $1", id); err != nil {
			http.Error(w, "Failed to fetch loads", http.StatusInternalServerError)
			return
		}
		sales := []models.MaterialSale{}
		if err := db.Select(&sales, "SELECT * FROM material_sales WHERE customer_id = $1", id); err != nil {
			http.Error(w, "Failed to fetch material sales", http.StatusInternalServerError)
			return
		}

		resp := CustomerBalanceResponse{
			CustomerID:      id,
			Balance:         ledger.CustomerAggregateBalance(id, loads),
			MaterialBalance: ledger.CustomerMaterialBalance(id, sales),
			Loads:           []CustomerLoadBalance{},
		}

		for _, l := range loads {
			if l.Status == models.LoadStatusCancelled {
				continue
			}
			resp.Loads = append(resp.Loads, CustomerLoadBalance{
				LoadID:           l.ID,
				PickupLocation:   l.PickupLocation,
				DeliveryLocation: l.DeliveryLocation,
				TotalAmount:      l.TotalAmount,
				Paid:             ledger.CustomerPaid(l),
				Balance:          ledger.CustomerBalance(l),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
