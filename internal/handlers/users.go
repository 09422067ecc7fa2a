package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"truckledger-backend/internal/models"
	"truckledger-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser creates a staff or owner account. Requires owner authentication.
func CreateUser(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Email == "" || req.Password == "" || req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "Email, password and name are required")
			return
		}
		if req.Role != "owner" && req.Role != "staff" {
			utils.Error(w, http.StatusBadRequest, "Role must be 'owner' or 'staff'")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		id := uuid.New().String()
		now := time.Now().Unix()

		_, err = db.Exec(`
			INSERT INTO users (id, email, password, name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, req.Email, string(hashed), req.Name, req.Role, now, now)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		var created models.User
		if err := db.Get(&created, "SELECT * FROM users WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created user")
			return
		}

		log.Printf("✅ User created: %s (%s)", created.Email, created.Role)
		utils.JSON(w, http.StatusCreated, created.ToUserResponse())
	}
}
