package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends de armazenamento suportados
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Store     StoreConfig
	PostgREST PostgRESTConfig
	Postgres  PostgresConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	AppEnv        string
	Port          string
	CORSOrigins   []string
	SessionSecret string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type StoreConfig struct {
	Backend string
}

type PostgRESTConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// Load carrega o .env (se existir) e monta a configuração a partir do ambiente
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:        getEnv("APP_ENV", "development"),
			Port:          getEnv("PORT", "8080"),
			CORSOrigins:   getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			SessionSecret: getEnv("SESSION_SECRET", "discrepometro-dev-secret"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", "json"),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", BackendPostgREST),
		},
		PostgREST: PostgRESTConfig{
			URL:     getEnv("SUPABASE_URL", "http://localhost:54321"),
			APIKey:  getEnv("SUPABASE_KEY", ""),
			Timeout: time.Duration(getEnvInt("SUPABASE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "root"),
			Password: getEnv("DATABASE_PASSWORD", "pass"),
			DBName:   getEnv("DATABASE_NAME", "discrepometro"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
			MaxConns: getEnvInt("DATABASE_MAX_CONNS", 10),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("SERVICE_NAME", "discrepometro"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendPostgREST:
		if c.PostgREST.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required for the %s backend", BackendPostgREST)
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

// IsDevelopment indica se o serviço roda em ambiente de desenvolvimento
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}

// DSN monta a URL de conexão com o PostgreSQL
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.DBName,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
