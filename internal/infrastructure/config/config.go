package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	Environment     string
	LogLevel        slog.Level
	CORSOrigins     string

	DatabasePath string

	// Auth
	JWTSecret     string
	TokenTTL      time.Duration
	AuthRateLimit int           // attempts per window per client IP
	AuthWindow    time.Duration // fixed window length

	// Optional Redis backend for the auth rate limiter.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Python tutor service
	PythonServiceURL string
	TutorTimeout     time.Duration

	// Analytics windows
	ProgressDays    int
	WeeklyWeeks     int
	LeaderboardSize int
}

// Load reads the configuration from the environment, loading a .env file first
// if one exists. Use Validate to check the required keys.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		ServerAddress:    getenvDefault("SERVER_ADDRESS", ":5000"),
		ShutdownTimeout:  getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		Environment:      getenvDefault("ENVIRONMENT", "development"),
		LogLevel:         getLevel("LOG_LEVEL", slog.LevelInfo),
		CORSOrigins:      getenvDefault("CORS_ORIGINS", "*"),
		DatabasePath:     getenvDefault("DATABASE_PATH", "trigtutor.db"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         getDurationDefault("TOKEN_TTL", 7*24*time.Hour),
		AuthRateLimit:    getIntDefault("AUTH_RATE_LIMIT", 5),
		AuthWindow:       getDurationDefault("AUTH_RATE_WINDOW", 15*time.Minute),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getIntDefault("REDIS_DB", 0),
		PythonServiceURL: strings.TrimRight(os.Getenv("PYTHON_SERVICE_URL"), "/"),
		TutorTimeout:     getDurationDefault("TUTOR_TIMEOUT", 60*time.Second),
		ProgressDays:     getIntDefault("PROGRESS_DAYS", 30),
		WeeklyWeeks:      getIntDefault("WEEKLY_WEEKS", 12),
		LeaderboardSize:  getIntDefault("LEADERBOARD_SIZE", 10),
	}
}

// Validate returns an error naming every required variable that is unset.
func (c *Config) Validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.PythonServiceURL == "" {
		missing = append(missing, "PYTHON_SERVICE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Origins splits CORSOrigins on commas, dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config: invalid integer, using default", "key", k, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config: invalid duration, using default", "key", k, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getLevel(k string, fallback slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return lvl
}
