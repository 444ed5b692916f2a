package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Engine   EngineConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type EngineConfig struct {
	// TopK and MinScore are defaults for a match request; a request may
	// override both.
	TopK     int
	MinScore float64

	// Neighbors is k for the candidate-similarity index.
	Neighbors int

	// TrainingSeed makes retraining reproducible for identical input.
	TrainingSeed int64

	// ScoringWorkers bounds the per-request scoring pool.
	ScoringWorkers int

	// ModelDir is where trained model bundles are persisted.
	ModelDir string
}

type MetricsConfig struct {
	Enabled bool
	Port    string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		LogJSON:     boolOrDefault(opt("LOG_JSON"), false),
		LogDebug:    boolOrDefault(opt("LOG_DEBUG"), false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      secondsOrDefault(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.Engine = EngineConfig{
		TopK:           intOrDefault(opt("MATCH_TOP_K"), 10),
		MinScore:       floatOrDefault(opt("MATCH_MIN_SCORE"), 0),
		Neighbors:      intOrDefault(opt("MODEL_NEIGHBORS"), 10),
		TrainingSeed:   int64OrDefault(opt("MODEL_TRAINING_SEED"), 42),
		ScoringWorkers: intOrDefault(opt("MATCH_SCORING_WORKERS"), 4),
		ModelDir:       stringOrDefault(opt("MODEL_DIR"), "models"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: boolOrDefault(opt("METRICS_ENABLED"), false),
		Port:    stringOrDefault(opt("METRICS_PORT"), "9090"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if cfg.Engine.TopK <= 0 {
		cfg.Engine.TopK = 10
	}
	if cfg.Engine.MinScore < 0 || cfg.Engine.MinScore > 1 {
		cfg.Engine.MinScore = 0
	}
	if cfg.Engine.Neighbors <= 0 {
		cfg.Engine.Neighbors = 10
	}
	if cfg.Engine.ScoringWorkers <= 0 {
		cfg.Engine.ScoringWorkers = 1
	}

	return cfg, nil
}

func stringOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolOrDefault(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func intOrDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func int64OrDefault(v string, def int64) int64 {
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func floatOrDefault(v string, def float64) float64 {
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func secondsOrDefault(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
