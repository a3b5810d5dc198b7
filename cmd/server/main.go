// Command server starts the Subtrack transaction NLP API.
//
// Usage:
//
//	go run ./cmd/server [flags]
//
// Flags:
//
//	-port  HTTP port to listen on (default: 8080)
//	-seed  Path to a seed data JSON file to load on startup (default: data/seed.json)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"subtrack/nlp-api/internal/analyze"
	"subtrack/nlp-api/internal/api"
	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/extract"
	"subtrack/nlp-api/internal/fraud"
	"subtrack/nlp-api/internal/patterns"
	"subtrack/nlp-api/internal/store"
	"subtrack/nlp-api/internal/webhook"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port")
	seedFile := flag.String("seed", "data/seed.json", "path to seed data JSON file")
	flag.Parse()

	// Most PaaS platforms inject PORT as an env var; it takes precedence
	// over the -port flag.
	if envPort := os.Getenv("PORT"); envPort != "" {
		if p, err := strconv.Atoi(envPort); err == nil {
			*port = p
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// ── Wire dependencies ─────────────────────────────────────────────────────
	// The pattern catalog is built once and shared read-only by every component.
	catalog := patterns.NewCatalog()
	processor := extract.NewProcessor(catalog)
	detector := fraud.NewDetector(catalog)
	analyzer := analyze.New(processor, detector)
	s := store.New()
	notifier := webhook.New(s)
	handler := api.NewHandler(processor, detector, analyzer, s, notifier)
	router := api.NewRouter(handler)

	// ── Load seed data ────────────────────────────────────────────────────────
	if err := loadSeedData(s, analyzer, *seedFile); err != nil {
		// Non-fatal: the API works fine without seed data.
		slog.Warn("seed data not loaded", "file", *seedFile, "reason", err.Error())
	}

	// ── Start HTTP server ─────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "port", *port, "seed_file", *seedFile)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// seedRecord is one line of the seed file: a notification text attributed to
// a demo user.
type seedRecord struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// loadSeedData reads a JSON file of notification texts, runs each user's
// batch through the analyzer, and persists the results so the API starts
// with demo subscriptions and alerts.
func loadSeedData(s *store.Store, a *analyze.Analyzer, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	byUser := make(map[string][]domain.RawTransaction)
	for _, rec := range records {
		byUser[rec.UserID] = append(byUser[rec.UserID], domain.RawTransaction{Text: rec.Text})
	}

	var subs, alerts int
	for userID, inputs := range byUser {
		result, err := a.Analyze(inputs, userID)
		if err != nil {
			return fmt.Errorf("analyze seed batch for %s: %w", userID, err)
		}
		s.SaveAnalysis(result)
		subs += result.SubscriptionsFound
		alerts += result.FraudAlertsFound
	}

	slog.Info("seed data loaded",
		"file", filePath,
		"texts", len(records),
		"users", len(byUser),
		"subscriptions", subs,
		"fraud_alerts", alerts,
	)
	return nil
}
