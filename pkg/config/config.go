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
	Env  string
	Port int

	Gateway    GatewayConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Dashboard  DashboardConfig
	Monitoring MonitoringConfig
	ReportForm ReportFormConfig
	Exports    ExportsConfig
}

// GatewayConfig points at the institutional data gateway that owns
// users, classes, courses, lectures and ratings.
type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds the secret used to verify gateway-issued session tokens.
// This service never mints tokens; it only decodes them.
type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard composition and cache tuning.
type DashboardConfig struct {
	CacheTTL      time.Duration
	RecentLimit   int
	UpcomingScope time.Duration
}

// MonitoringConfig tunes the lecture analytics pipeline.
type MonitoringConfig struct {
	CacheTTL   time.Duration
	TopCourses int
}

// ReportFormConfig controls wizard session persistence.
type ReportFormConfig struct {
	SessionTTL time.Duration
	MaxWeeks   int
}

// ExportsConfig names the downloadable export surface.
type ExportsConfig struct {
	FilenamePrefix string
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

	cfg.Gateway = GatewayConfig{
		BaseURL: strings.TrimRight(v.GetString("GATEWAY_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("GATEWAY_TIMEOUT"), 15*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL:      parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
		RecentLimit:   v.GetInt("DASHBOARD_RECENT_LIMIT"),
		UpcomingScope: parseDuration(v.GetString("DASHBOARD_UPCOMING_SCOPE"), 7*24*time.Hour),
	}

	cfg.Monitoring = MonitoringConfig{
		CacheTTL:   parseDuration(v.GetString("MONITORING_CACHE_TTL"), 2*time.Minute),
		TopCourses: v.GetInt("MONITORING_TOP_COURSES"),
	}

	cfg.ReportForm = ReportFormConfig{
		SessionTTL: parseDuration(v.GetString("FORM_SESSION_TTL"), 30*time.Minute),
		MaxWeeks:   v.GetInt("FORM_MAX_WEEKS"),
	}

	cfg.Exports = ExportsConfig{
		FilenamePrefix: v.GetString("EXPORT_FILENAME_PREFIX"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("GATEWAY_BASE_URL", "http://localhost:8081")
	v.SetDefault("GATEWAY_TIMEOUT", "15s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("DASHBOARD_RECENT_LIMIT", 3)
	v.SetDefault("DASHBOARD_UPCOMING_SCOPE", "168h")

	v.SetDefault("MONITORING_CACHE_TTL", "2m")
	v.SetDefault("MONITORING_TOP_COURSES", 3)

	v.SetDefault("FORM_SESSION_TTL", "30m")
	v.SetDefault("FORM_MAX_WEEKS", 15)

	v.SetDefault("EXPORT_FILENAME_PREFIX", "lectures")
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
