package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store backends available to the mock backend.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Env         string
	Port        int
	ServiceName string

	API      APIConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Mock     MockConfig
	Export   ExportConfig
}

// APIConfig locates the REST backend consumed by the DAOs.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MockConfig shapes the answers of the local mock backend.
type MockConfig struct {
	Store         string
	PascalCase    bool
	WrapResponses bool
}

// ExportConfig controls where rendered exports are written.
type ExportConfig struct {
	Dir     string
	Workers int
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
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.ServiceName = v.GetString("SERVICE_NAME")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_URL"), "/"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Mock = MockConfig{
		Store:         strings.ToLower(strings.TrimSpace(v.GetString("MOCK_STORE"))),
		PascalCase:    v.GetBool("MOCK_PASCAL_CASE"),
		WrapResponses: v.GetBool("MOCK_WRAP_RESPONSES"),
	}

	cfg.Export = ExportConfig{
		Dir:     v.GetString("EXPORT_DIR"),
		Workers: v.GetInt("EXPORT_WORKERS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("SERVICE_NAME", "scolarite")

	v.SetDefault("API_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT", "15s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "scolarite")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MOCK_STORE", StoreMemory)
	v.SetDefault("MOCK_PASCAL_CASE", false)
	v.SetDefault("MOCK_WRAP_RESPONSES", true)

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_WORKERS", 4)
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
