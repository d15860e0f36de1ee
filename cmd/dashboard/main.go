package main

import (
	"fmt"
	"html/template"
	"net/http"
	"os"

	"trade-dashboard-go/internal/analysis"
	"trade-dashboard-go/internal/config"
	"trade-dashboard-go/internal/database"
	"trade-dashboard-go/internal/logger"
	"trade-dashboard-go/internal/session"
	"trade-dashboard-go/web"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Open the in-memory trade store
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open trade store", zap.Error(err))
	}
	store := database.NewTradeStore(db)

	// Parse the embedded templates
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	client := analysis.NewClient(&cfg.Analysis, log)
	sessions := session.NewManager(cfg.Dashboard.DefaultPageSize)

	// Setup HTTP server
	mux := http.NewServeMux()

	h := NewHandler(log, &cfg, store, sessions, client, tmpl)

	mux.HandleFunc("/", h.IndexHandler)
	mux.HandleFunc("/upload", h.UploadHandler)
	mux.HandleFunc("/dashboard", h.DashboardHandler)
	mux.HandleFunc("/chart.png", h.ChartHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting dashboard server",
		zap.String("address", addr),
		zap.String("analysis_server", cfg.Analysis.BaseURL),
	)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("Dashboard server failed", zap.Error(err))
	}
}
