// Command server runs the claims backend HTTP API.
//
// Startup order:
//  1. Load .env (best effort) and the environment configuration.
//  2. Configure zerolog (level, optional pretty console output).
//  3. Initialize OpenTelemetry tracing (no-op unless enabled).
//  4. Open SQLite, migrate the schema, and seed the product catalog.
//  5. Construct the collaborators (extractor, analyzer, verifier) and the
//     background worker pool.
//  6. Register routes and serve until SIGINT/SIGTERM, then drain gracefully.
//
// @title        ClaimMate Claims API
// @version      1.0
// @description  Insurance policy upload, risk analysis, claims tracking, and
// @description  product comparison backend.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/claimmate/go-claims-backend/docs"
	"github.com/claimmate/go-claims-backend/internal/chain"
	"github.com/claimmate/go-claims-backend/internal/config"
	httpapi "github.com/claimmate/go-claims-backend/internal/http"
	"github.com/claimmate/go-claims-backend/internal/llm"
	"github.com/claimmate/go-claims-backend/internal/observability"
	"github.com/claimmate/go-claims-backend/internal/ocr"
	"github.com/claimmate/go-claims-backend/internal/repo"
	"github.com/claimmate/go-claims-backend/internal/sysutil"
	"github.com/claimmate/go-claims-backend/internal/worker"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Storage
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("could not open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := repo.SeedPolicyProducts(db); err != nil {
		log.Fatal().Err(err).Msg("catalog seed failed")
	}

	// Collaborators
	var imageOCR ocr.Extractor
	if cfg.OCR.Endpoint != "" {
		imageOCR = ocr.NewTesseractClient(cfg.OCR)
	}
	extractor := ocr.NewComposite(imageOCR)
	analyzer := llm.NewOpenAIAnalyzer(cfg.OpenAI)
	verifier := chain.NewStubVerifier(sysutil.FirstNonEmpty(os.Getenv("CHAIN_ENVIRONMENT"), "testnet"))

	// Background pipeline
	pool := worker.New(cfg.Worker.Count, cfg.Worker.QueueSize)

	// HTTP
	r := gin.New()
	httpapi.RegisterRoutes(r, db, httpapi.Collaborators{
		Extractor: extractor,
		Analyzer:  analyzer,
		Verifier:  verifier,
		Pool:      pool,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	// Stop accepting requests, then drain in-flight analysis jobs.
	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	pool.Stop(sctx)

	log.Info().Msg("bye")
}
