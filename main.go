package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/residencyhq/intake/cliparse"
	"github.com/residencyhq/intake/db"
	"github.com/residencyhq/intake/matching"
	"github.com/residencyhq/intake/middleware"
	"github.com/residencyhq/intake/router"
)

func main() {
	// .env is optional; real deployments export variables directly
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if cfg.SeedHomes {
		if err := db.SeedHomes(dbConn); err != nil {
			slog.Error("home seeding failed", "error", err)
			os.Exit(1)
		}
	}

	// Ranking collaborator; matching falls back to a random pick when
	// no API key is configured.
	var ranker matching.Ranker
	if cfg.OpenAIAPIKey != "" {
		ranker = matching.NewOpenAIRanker(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		slog.Info("ranking collaborator configured", "model", cfg.OpenAIModel)
	} else {
		slog.Warn("OPENAI_API_KEY not set; matching will use the fallback pick")
	}

	mux := router.NewRouter(dbConn, cfg, ranker)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
