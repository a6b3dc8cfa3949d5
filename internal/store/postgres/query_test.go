package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusmosca/discrepometro/internal/store"
)

type item struct {
	ID   string  `db:"id"`
	Nome string  `db:"nome"`
	Qtd  float64 `db:"quantidade"`
}

func (i item) Fields() map[string]any {
	return map[string]any{"id": i.ID, "nome": i.Nome, "quantidade": i.Qtd}
}

var itens = store.TableSpec{Name: "itens", Columns: []string{"id", "nome", "quantidade", "data"}, Order: "nome"}

func TestBuildSelect(t *testing.T) {
	filter := store.Filter{}.
		Where("nome", store.OpEq, "Acme").
		Where("data", store.OpGte, "2021-01-01")

	query, args, err := buildSelect(itens, filter)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM itens WHERE nome = $1 AND data >= $2 ORDER BY nome", query)
	assert.Equal(t, []any{"Acme", "2021-01-01"}, args)
}

func TestBuildSelect_NoConditions(t *testing.T) {
	query, args, err := buildSelect(store.TableSpec{Name: "itens", Columns: []string{"id"}}, store.Filter{})

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM itens", query)
	assert.Empty(t, args)
}

func TestBuildSelect_RejectsUnknownColumn(t *testing.T) {
	_, _, err := buildSelect(itens, store.Filter{}.Where("nome; DROP TABLE itens", store.OpEq, 1))

	assert.ErrorIs(t, err, store.ErrInvalidColumn)
}

func TestBuildInsert_MultiRow(t *testing.T) {
	query, args, err := buildInsert(itens, []item{{ID: "1", Nome: "A", Qtd: 2}, {ID: "2", Nome: "B", Qtd: 3}})

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO itens (id, nome, quantidade) VALUES ($1, $2, $3), ($4, $5, $6) RETURNING *", query)
	assert.Equal(t, []any{"1", "A", 2.0, "2", "B", 3.0}, args)
}

func TestBuildInsert_Empty(t *testing.T) {
	_, _, err := buildInsert[item](itens, nil)

	assert.Error(t, err)
}

func TestBuildUpdate(t *testing.T) {
	query, args, err := buildUpdate(itens, "abc", store.Patch{"quantidade": 5.0, "nome": "Novo"})

	require.NoError(t, err)
	assert.Equal(t, "UPDATE itens SET nome = $1, quantidade = $2 WHERE id = $3 RETURNING *", query)
	assert.Equal(t, []any{"Novo", 5.0, "abc"}, args)
}

func TestBuildUpdate_RejectsEmptyPatch(t *testing.T) {
	_, _, err := buildUpdate(itens, "abc", store.Patch{})

	assert.Error(t, err)
}

func TestNewTable(t *testing.T) {
	table := NewTable[item](nil, itens)

	assert.NotNil(t, table)
	assert.IsType(t, &Table[item]{}, table)
}

func TestByIDError(t *testing.T) {
	badText := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

	err := byIDError("abc", badText)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = byIDError("0b7f3a52-8c1e-4d2a-9f61-3c5e7a9b1d20", badText)
	assert.ErrorIs(t, err, store.ErrInvalidValue)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(other), byIDError("abc", other))
}

func TestValueError(t *testing.T) {
	err := valueError(&pgconn.PgError{Code: "22P02"})

	assert.ErrorIs(t, err, store.ErrInvalidValue)
}

func TestBuildSelect_LessThan(t *testing.T) {
	query, args, err := buildSelect(itens, store.Filter{}.Where("quantidade", store.OpLt, 5))

	require.NoError(t, err)
	assert.Contains(t, query, "quantidade < $1")
	assert.Equal(t, []any{5}, args)
}
