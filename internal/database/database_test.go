package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/config"
	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/store/postgrest"
)

type row struct {
	ID string `json:"id" db:"id"`
}

func (r row) Fields() map[string]any { return map[string]any{"id": r.ID} }

func TestOpen_PostgRESTBackend(t *testing.T) {
	cfg := &config.Config{
		Store:     config.StoreConfig{Backend: config.BackendPostgREST},
		PostgREST: config.PostgRESTConfig{URL: "http://localhost:54321"},
	}

	backend, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer backend.Close()

	table := OpenTable[row](backend, store.TableSpec{Name: "rows", Columns: []string{"id"}})
	assert.IsType(t, &postgrest.Table[row]{}, table)
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "sqlite"}}

	_, err := Open(context.Background(), cfg, zap.NewNop())

	assert.Error(t, err)
}
