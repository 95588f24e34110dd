package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/baderkothman/admin-dashboard/internal/config"
	"github.com/baderkothman/admin-dashboard/internal/db"
	"github.com/baderkothman/admin-dashboard/internal/middleware"
	"github.com/baderkothman/admin-dashboard/internal/tracking"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect()
	tracking.Init(cfg.EvalMode)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	rateLimit := middleware.RateLimitMiddleware(cfg.ReportRatePerSec, cfg.ReportBurst)
	r.Mount("/tracking", tracking.SetupRoutes(rateLimit))

	log.Printf("Server listening on port :%s...", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
