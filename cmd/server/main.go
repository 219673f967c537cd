package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/trigtutor/backend/internal/api"
	"github.com/trigtutor/backend/internal/auth"
	"github.com/trigtutor/backend/internal/infrastructure/config"
	"github.com/trigtutor/backend/internal/ratelimit"
	"github.com/trigtutor/backend/internal/service"
	"github.com/trigtutor/backend/internal/store"
	"github.com/trigtutor/backend/internal/tutor"

	_ "github.com/trigtutor/backend/docs" // swagger docs
)

// @title           Trig Tutor API
// @version         1.0
// @description     Gateway for the trigonometry tutor: accounts, progress analytics and proxied tutor requests.

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	defer db.Close()

	var limiter ratelimit.Limiter = ratelimit.NewMemory(cfg.AuthRateLimit, cfg.AuthWindow)
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		limiter = ratelimit.NewRedis(rdb, cfg.AuthRateLimit, cfg.AuthWindow)
		logger.Info("auth rate limiter backed by redis", "address", cfg.RedisAddr)
	}

	windows := service.Windows{
		ProgressDays:    cfg.ProgressDays,
		WeeklyWeeks:     cfg.WeeklyWeeks,
		LeaderboardSize: cfg.LeaderboardSize,
	}

	handler := api.NewHandler(api.Deps{
		Store:       db,
		Recorder:    service.NewRecorder(db, logger),
		Analytics:   service.NewAnalytics(db, windows, logger),
		Issuer:      auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Tutor:       tutor.NewClient(cfg.PythonServiceURL, cfg.TutorTimeout),
		AuthLimiter: limiter,
		Logger:      logger,
		Environment: cfg.Environment,
	})

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → Recover → CORS → mux ────────────
	chain := api.Logging(logger)(api.Recover(logger)(api.CORS(cfg.Origins())(mux)))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           chain,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.TutorTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"environment", cfg.Environment,
		"python_service", cfg.PythonServiceURL,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
