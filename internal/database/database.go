package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/config"
	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/store/postgres"
	"github.com/matheusmosca/discrepometro/internal/store/postgrest"
)

// Backend mantém a conexão com o data store escolhido na configuração
type Backend struct {
	rest *postgrest.Client
	pool *pgxpool.Pool
}

// Open conecta ao backend configurado (API PostgREST hospedada ou PostgreSQL direto)
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgREST:
		log.Info("🔌 Using hosted PostgREST data store", zap.String("url", cfg.PostgREST.URL))
		return &Backend{rest: postgrest.NewClient(postgrest.Config{
			URL:     cfg.PostgREST.URL,
			APIKey:  cfg.PostgREST.APIKey,
			Timeout: cfg.PostgREST.Timeout,
		})}, nil
	case config.BackendPostgres:
		pool, err := initDB(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return &Backend{pool: pool}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Close libera o pool de conexões, se houver
func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// OpenTable cria o store.Table da entidade T sobre o backend
func OpenTable[T store.Record](b *Backend, spec store.TableSpec) store.Table[T] {
	if b.pool != nil {
		return postgres.NewTable[T](b.pool, spec)
	}
	return postgrest.NewTable[T](b.rest, spec)
}

func initDB(ctx context.Context, cfg config.PostgresConfig, log *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Aguarda o banco ficar disponível
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			log.Info("✅ Connected to database with connection pool", zap.String("db_name", cfg.DBName))
			return pool, nil
		}
		log.Info("⏳ Waiting for database...", zap.Int("attempt", i+1))
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}

	pool.Close()
	return nil, fmt.Errorf("failed to connect to database after 30 attempts")
}
