package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matheusmosca/discrepometro/internal/store"
)

var sqlOperators = map[store.Operator]string{
	store.OpEq:  "=",
	store.OpGte: ">=",
	store.OpLt:  "<",
	store.OpLte: "<=",
}

// buildSelect monta o SELECT de uma listagem com as condições do filtro
func buildSelect(spec store.TableSpec, filter store.Filter) (string, []any, error) {
	if err := spec.ValidateFilter(filter); err != nil {
		return "", nil, err
	}

	var (
		where []string
		args  []any
	)
	for _, cond := range filter.Conditions {
		args = append(args, cond.Value)
		where = append(where, fmt.Sprintf("%s %s $%d", cond.Column, sqlOperators[cond.Op], len(args)))
	}

	query := "SELECT * FROM " + spec.Name
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	order := filter.Order
	if order == "" {
		order = spec.Order
	}
	if order != "" {
		query += " ORDER BY " + order
	}
	return query, args, nil
}

// buildInsert monta um INSERT de várias linhas com RETURNING *
func buildInsert[T store.Record](spec store.TableSpec, records []T) (string, []any, error) {
	if len(records) == 0 {
		return "", nil, fmt.Errorf("insert into %s: no records", spec.Name)
	}

	columns := sortedColumns(records[0].Fields())
	for _, column := range columns {
		if !spec.HasColumn(column) {
			return "", nil, fmt.Errorf("%w: %s.%s", store.ErrInvalidColumn, spec.Name, column)
		}
	}

	var (
		args   []any
		tuples []string
	)
	for _, record := range records {
		fields := record.Fields()
		placeholders := make([]string, len(columns))
		for i, column := range columns {
			args = append(args, fields[column])
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING *",
		spec.Name, strings.Join(columns, ", "), strings.Join(tuples, ", "))
	return query, args, nil
}

// buildUpdate monta o UPDATE parcial de um registro pelo id
func buildUpdate(spec store.TableSpec, id string, patch store.Patch) (string, []any, error) {
	if err := spec.ValidatePatch(patch); err != nil {
		return "", nil, err
	}
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("update %s %s: empty patch", spec.Name, id)
	}

	columns := sortedColumns(patch)
	sets := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		args = append(args, patch[column])
		sets[i] = fmt.Sprintf("%s = $%d", column, len(args))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		spec.Name, strings.Join(sets, ", "), len(args))
	return query, args, nil
}

func sortedColumns[V any](fields map[string]V) []string {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
