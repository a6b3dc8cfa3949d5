package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("PORT", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendPostgREST, cfg.Store.Backend)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.PostgREST.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", BackendPostgres)
	t.Setenv("DATABASE_HOST", "db")
	t.Setenv("DATABASE_MAX_CONNS", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 25, cfg.Postgres.MaxConns)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Contains(t, cfg.Postgres.DSN(), "@db:5432/")
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Load()

	assert.Error(t, err)
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")

	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}

func TestPostgresConfig_DSNEscapesCredentials(t *testing.T) {
	p := PostgresConfig{
		User: "app", Password: "p@ss/w:rd", Host: "db", Port: "5432",
		DBName: "discrepometro", SSLMode: "disable",
	}

	u, err := url.Parse(p.DSN())

	require.NoError(t, err)
	assert.Equal(t, "db:5432", u.Host)
	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss/w:rd", pass)
	assert.Equal(t, "/discrepometro", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}
