package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/Nidhi-Chauhan111/Eco-App/config"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/achievement"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/api"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/auth"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/database"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/footprint"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/inspiration"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/llm"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/metrics"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/middleware"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/sentiment"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/services"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/streak"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/tts"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Pretty)
	logr := logger.Component("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	table, err := loadEmissionTable(cfg.Emission.FactorsFile)
	if err != nil {
		log.Fatalf("Failed to load emission factors: %v", err)
	}
	logr.With("factors", table.Len()).Info("emission factors loaded")

	catalog, err := achievement.DefaultCatalog(cfg.Achievements.Thresholds)
	if err != nil {
		log.Fatalf("Invalid achievement thresholds: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Streak.Timezone)
	if err != nil {
		log.Fatalf("Invalid streak timezone %q: %v", cfg.Streak.Timezone, err)
	}

	classifier, generator := buildLanguageStack(ctx, cfg, logr)

	m := metrics.New(prometheus.DefaultRegisterer)
	hub := websocket.NewHub(cfg.Server.AllowedOrigins)
	go hub.Run(ctx)

	machine := streak.NewMachine(streak.Config{
		MaxFreezesPerPeriod: cfg.Streak.MaxFreezesPerPeriod,
		ResetThresholdDays:  cfg.Streak.ResetThresholdDays,
	})
	streaks := services.NewStreakService(db, machine, catalog,
		services.WithNotifier(hub),
		services.WithMetrics(m),
		services.WithLocation(loc),
	)
	analyzer := sentiment.NewAnalyzer(classifier, sentiment.Config{
		ConfidenceThreshold: cfg.Sentiment.ConfidenceThreshold,
		PositiveThreshold:   cfg.Sentiment.PositiveThreshold,
		NegativeThreshold:   cfg.Sentiment.NegativeThreshold,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, m)
	go limiter.Cleanup(ctx, time.Minute, 10*time.Minute)

	speech := tts.New(ctx, cfg.Tts)

	router := api.NewRouter(api.Deps{
		Users:          services.NewUserService(db),
		Journal:        services.NewJournalService(db, analyzer, generator, streaks, m),
		Streaks:        streaks,
		Footprints:     services.NewFootprintService(db, footprint.NewEngine(table), m),
		Sessions:       auth.NewManager(cfg.Auth.SessionSecret, cfg.Auth.SecureCookies),
		Speech:         speech,
		Live:           hub,
		Metrics:        m,
		Limiter:        limiter,
		MetricsHandler: middleware.BasicAuth(cfg.Metrics.Username, cfg.Metrics.Password)(promhttp.Handler()),
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.With("port", cfg.Server.Port).With("database", cfg.Database.Driver).
			With("classifier", cfg.Sentiment.Classifier).With("tts", speech.Name()).
			Info("eco-journal server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.WithError(err).Error("graceful shutdown failed")
	}
}

func loadEmissionTable(path string) (*emission.Table, error) {
	if path == "" {
		return emission.Default()
	}
	return emission.LoadFile(path)
}

// buildLanguageStack picks the emotion classifier and inspiration generator.
// LLM backends degrade to the offline ones when the model cannot be reached.
func buildLanguageStack(ctx context.Context, cfg *config.Config, logr *logger.Log) (sentiment.Classifier, inspiration.Generator) {
	var classifier sentiment.Classifier = sentiment.NewLexiconClassifier()
	var generator inspiration.Generator = inspiration.NewTemplateGenerator()

	if !llm.Enabled(cfg) {
		return classifier, generator
	}

	client, err := llm.NewLLMClient(cfg)
	if err != nil {
		logr.WithError(err).Warn("language model unavailable, using offline classifier and templates")
		return classifier, generator
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.IsModelAvailable(checkCtx); err != nil {
		logr.WithError(err).With("provider", cfg.LLM.Provider).Warn("language model not ready, requests may fail")
	}

	if cfg.Sentiment.Classifier == "llm" {
		classifier = sentiment.NewLLMClassifier(client)
	}
	if cfg.Inspiration.Provider == "llm" {
		generator = inspiration.NewLLMGenerator(client, generator)
	}
	return classifier, generator
}
