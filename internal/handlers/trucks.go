package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"truckledger-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func GetTrucks(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trucks := []models.Truck{}
		if err := db.Select(&trucks, "SELECT * FROM trucks ORDER BY created_at DESC"); err != nil {
			http.Error(w, "Failed to fetch trucks", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(trucks)
	}
}

func GetTruck(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var truck models.Truck
		if err := db.Get(&truck, "SELECT * FROM trucks WHERE id = $1", id); err != nil {
			http.Error(w, "Truck not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(truck)
	}
}

func CreateTruck(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTruckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Number == "" {
			http.Error(w, "Truck number is required", http.StatusBadRequest)
			return
		}

		now := time.Now().Unix()
		truck := models.Truck{
			ID:        uuid.New().String(),
			Number:    req.Number,
			Model:     req.Model,
			Capacity:  req.Capacity,
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err := db.NamedExec(`
			INSERT INTO trucks (id, number, model, capacity, created_at, updated_at)
			VALUES (:id, :number, :model, :capacity, :created_at, :updated_at)
		`, truck)
		if err != nil {
			http.Error(w, "Failed to create truck", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(truck)
	}
}

func UpdateTruck(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateTruckRequest
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

		if req.Number != nil {
			addField("number", *req.Number)
		}
		if req.Model != nil {
			addField("model", *req.Model)
		}
		if req.Capacity != nil {
			addField("capacity", *req.Capacity)
		}

		argCount++
		query := fmt.Sprintf("UPDATE trucks SET %s WHERE id = $%d", setClause, argCount)
		args = append(args, id)

		result, err := db.Exec(query, args...)
		if err != nil {
			http.Error(w, "Failed to update truck", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			http.Error(w, "Truck not found", http.StatusNotFound)
			return
		}

		var truck models.Truck
		if err := db.Get(&truck, "SELECT * FROM trucks WHERE id = $1", id); err != nil {
			http.Error(w, "Failed to fetch updated truck", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(truck)
	}
}
