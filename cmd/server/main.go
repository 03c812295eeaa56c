package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mathprep/backend/internal/auth"
	"github.com/mathprep/backend/internal/database"
	"github.com/mathprep/backend/internal/mastery"
	"github.com/mathprep/backend/internal/middleware"
	"github.com/mathprep/backend/internal/models"
	"github.com/mathprep/backend/internal/narrative"
	"github.com/rs/cors"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)

	masteryStore := mastery.NewStore(db)
	narrativeStore := narrative.NewStore(db)
	narrator := narrative.NewGenerator()
	masteryService := mastery.NewService(masteryStore, narrator, narrativeStore)
	masteryHandler := mastery.NewHandler(masteryService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/profile/study", authHandler.UpdateStudyProfile).Methods("PUT")
	masteryHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Periodic snapshot sweep, opt-in via env
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			log.Fatalf("Invalid SWEEP_INTERVAL_MINUTES: %q", v)
		}
		go runSweepLoop(masteryService, time.Duration(minutes)*time.Minute)
	}

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func runSweepLoop(service *mastery.Service, interval time.Duration) {
	log.Printf("Snapshot sweep running every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		result, err := service.RunSweep(context.Background(), models.SweepRequest{})
		if err != nil {
			log.Printf("WARN: sweep failed: %v", err)
			continue
		}
		log.Printf("Sweep done: %d checked, %d recomputed, %d failed",
			result.PairsChecked, result.PairsEligible, result.PairsFailed)
	}
}
