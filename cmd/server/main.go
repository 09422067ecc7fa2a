package main

import (
	"log"
	"net/http"
	"os"

	"truckledger-backend/internal/database"
	"truckledger-backend/internal/handlers"
	"truckledger-backend/internal/middleware"
	"truckledger-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚛 TRUCKLEDGER BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: DATABASE_URL environment variable is required")
		log.Println("   Please set DATABASE_URL in your deployment variables or .env file")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Connect to database
	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	log.Println("🌱 Seeding database with initial users...")
	if err := database.SeedUsers(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: User seeding failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Users seeded successfully")

	// Initialize Gemini translation (optional)
	translator, err := services.NewTranslateService()
	if err != nil {
		log.Printf("⚠️  Translation disabled: %v", err)
		translator = nil
	} else {
		log.Println("✅ Translation service initialized")
	}

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// Telugu/English translation helper (no auth; carries no business data)
	r.Post("/api/translate", handlers.Translate(translator))

	// API routes (require authentication)
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			// Auth status endpoint
			r.Get("/auth/status", handlers.GetAuthStatus(db))

			// Dashboard
			r.Get("/dashboard", handlers.GetDashboard(db))

			// Trucks
			r.Get("/trucks", handlers.GetTrucks(db))
			r.Get("/trucks/{id}", handlers.GetTruck(db))
			r.Post("/trucks", handlers.CreateTruck(db))
			r.Patch("/trucks/{id}", handlers.UpdateTruck(db))

			// Drivers
			r.Get("/drivers", handlers.GetDrivers(db))
			r.Get("/drivers/{id}", handlers.GetDriver(db))
			r.Get("/drivers/{id}/balance", handlers.GetDriverBalance(db))
			r.Post("/drivers", handlers.CreateDriver(db))
			r.Patch("/drivers/{id}", handlers.UpdateDriver(db))

			// Customers
			r.Get("/customers", handlers.GetCustomers(db))
			r.Get("/customers/{id}", handlers.GetCustomer(db))
			r.Get("/customers/{id}/balance", handlers.GetCustomerBalance(db))
			r.Get("/customers/{id}/material-balance", handlers.GetCustomerMaterialBalance(db))
			r.Post("/customers", handlers.CreateCustomer(db))
			r.Patch("/customers/{id}", handlers.UpdateCustomer(db))

			// Trips (multi-leg journeys with generated leg loads)
			r.Get("/trips", handlers.GetTrips(db))
			r.Get("/trips/{id}", handlers.GetTrip(db))
			r.Post("/trips", handlers.CreateTrip(db))
			r.Patch("/trips/{id}", handlers.UpdateTrip(db))
			r.Post("/trips/{id}/points", handlers.AppendTripRoutePoint(db))
			r.Post("/trips/{id}/driver-payments", handlers.AddTripDriverPayment(db))

			// Loads
			r.Get("/loads", handlers.GetLoads(db))
			r.Get("/loads/{id}", handlers.GetLoad(db))
			r.Post("/loads", handlers.CreateLoad(db))
			r.Patch("/loads/{id}", handlers.UpdateLoad(db))
			r.Post("/loads/{id}/customer-payments", handlers.AddLoadCustomerPayment(db))
			r.Post("/loads/{id}/driver-payments", handlers.AddLoadDriverPayment(db))

			// Material trading ledger
			r.Get("/materials", handlers.GetMaterialEntries(db))
			r.Get("/materials/{id}", handlers.GetMaterialEntry(db))
			r.Post("/materials", handlers.CreateMaterialEntry(db))
			r.Patch("/materials/{id}", handlers.UpdateMaterialEntry(db))
			r.Get("/materials/{id}/sales", handlers.GetMaterialSales(db))
			r.Post("/materials/{id}/sales", handlers.CreateMaterialSale(db))
			r.Post("/material-sales/{id}/payments", handlers.AddMaterialSalePayment(db))

			// Reports
			r.Get("/reports/loads.xlsx", handlers.ExportLoadsReport(db))
		})

		// Owner endpoints (require authentication + owner role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("owner"))

			// User management
			r.Post("/users", handlers.CreateUser(db))
		})
	})

	// Get port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚛 Server starting on http://localhost:%s", port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
}
