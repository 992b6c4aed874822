package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS    CORSConfig
	Log     LogConfig
	Data    DataConfig
	Solver  SolverConfig
	Exports ExportsConfig
	Metrics MetricsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DataConfig locates the CSV catalog directory.
type DataConfig struct {
	Dir string
}

// SolverConfig carries the startup defaults for solver runs; they can be
// overridden at runtime through the solver config endpoints.
type SolverConfig struct {
	TerminationMinutes     int
	TerminationSeconds     int
	UnimprovedSecondsLimit int
	LateAcceptanceSize     int
	Seed                   int64
	RunTimeout             time.Duration
}

// ExportsConfig controls where generated timetable exports land.
type ExportsConfig struct {
	Dir string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Data = DataConfig{Dir: v.GetString("DATA_DIR")}

	cfg.Solver = SolverConfig{
		TerminationMinutes:     v.GetInt("SOLVER_TERMINATION_MINUTES"),
		TerminationSeconds:     v.GetInt("SOLVER_TERMINATION_SECONDS"),
		UnimprovedSecondsLimit: v.GetInt("SOLVER_UNIMPROVED_SECONDS_LIMIT"),
		LateAcceptanceSize:     v.GetInt("SOLVER_LATE_ACCEPTANCE_SIZE"),
		Seed:                   v.GetInt64("SOLVER_SEED"),
		RunTimeout:             parseDuration(v.GetString("SOLVER_RUN_TIMEOUT"), 10*time.Minute),
	}

	cfg.Exports = ExportsConfig{Dir: v.GetString("EXPORTS_DIR")}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DATA_DIR", "./data")

	v.SetDefault("SOLVER_TERMINATION_MINUTES", 5)
	v.SetDefault("SOLVER_TERMINATION_SECONDS", 0)
	v.SetDefault("SOLVER_UNIMPROVED_SECONDS_LIMIT", 120)
	v.SetDefault("SOLVER_LATE_ACCEPTANCE_SIZE", 400)
	v.SetDefault("SOLVER_SEED", 0)
	v.SetDefault("SOLVER_RUN_TIMEOUT", "10m")

	v.SetDefault("EXPORTS_DIR", "./exports")

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
