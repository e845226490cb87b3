package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/davinpratama/resto-ops/config"
	"github.com/davinpratama/resto-ops/database"
	"github.com/davinpratama/resto-ops/router"
	"github.com/davinpratama/resto-ops/session"
	"github.com/davinpratama/resto-ops/utils"
)

func init() {
	// Load .env sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai lintas package
	utils.InitDB(db)

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	// Redis untuk draft booking; tanpa Redis server tetap jalan,
	// hanya fitur draft yang mati
	var drafts *session.Store
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	drafts, err = session.NewStore(redisURL)
	if err != nil {
		utils.ErrorLogger.Printf("Redis unavailable, booking drafts disabled: %v", err)
		drafts = nil
	} else {
		defer drafts.Close()
	}

	// Setup router (termasuk rate limiter global per IP)
	r := router.SetupRouter(db, drafts)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
