package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matheusmosca/discrepometro/internal/store"
)

const invalidTextRepresentation = "22P02"

// Querier é o subconjunto de *pgxpool.Pool usado pelas tabelas
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// Table implementa store.Table usando PostgreSQL
type Table[T store.Record] struct {
	db   Querier
	spec store.TableSpec
}

// NewTable cria uma nova instância de Table
func NewTable[T store.Record](db Querier, spec store.TableSpec) *Table[T] {
	return &Table[T]{db: db, spec: spec}
}

// List busca os registros que atendem ao filtro
func (t *Table[T]) List(ctx context.Context, filter store.Filter) ([]T, error) {
	query, args, err := buildSelect(t.spec, filter)
	if err != nil {
		return nil, err
	}

	rows, err := t.collect(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.spec.Name, err)
	}
	return rows, nil
}

// Get busca um registro pelo id
func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	rows, err := t.collect(ctx, "SELECT * FROM "+t.spec.Name+" WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", t.spec.Name, id, byIDError(id, err))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", t.spec.Name, id, store.ErrNotFound)
	}
	return &rows[0], nil
}

// Insert grava todos os registros em um único comando
func (t *Table[T]) Insert(ctx context.Context, records []T) ([]T, error) {
	if len(records) == 0 {
		return nil, nil
	}

	query, args, err := buildInsert(t.spec, records)
	if err != nil {
		return nil, err
	}

	rows, err := t.collect(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inserting into %s: %w", t.spec.Name, valueError(err))
	}
	return rows, nil
}

// Update aplica uma atualização parcial ao registro
func (t *Table[T]) Update(ctx context.Context, id string, patch store.Patch) (*T, error) {
	query, args, err := buildUpdate(t.spec, id, patch)
	if err != nil {
		return nil, err
	}

	rows, err := t.collect(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating %s %s: %w", t.spec.Name, id, byIDError(id, err))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", t.spec.Name, id, store.ErrNotFound)
	}
	return &rows[0], nil
}

// Delete remove o registro; um id inexistente resulta em store.ErrNotFound
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	tag, err := t.db.Exec(ctx, "DELETE FROM "+t.spec.Name+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.spec.Name, id, byIDError(id, err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting %s %s: %w", t.spec.Name, id, store.ErrNotFound)
	}
	return nil
}

// byIDError trata um id que não é um UUID válido (22P02) como registro inexistente;
// com um id válido, o valor recusado veio do corpo da requisição
func byIDError(id string, err error) error {
	if invalidText(err) && store.MalformedID(id) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}
	return valueError(err)
}

func valueError(err error) error {
	if invalidText(err) {
		return fmt.Errorf("%w: %w", store.ErrInvalidValue, err)
	}
	return err
}

func invalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

func (t *Table[T]) collect(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return result, nil
}
