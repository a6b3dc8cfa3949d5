package postgrest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matheusmosca/discrepometro/internal/store"
)

const (
	preferRepresentation      = "return=representation"
	invalidTextRepresentation = "22P02"
)

// Table implementa store.Table sobre um recurso /rest/v1/<tabela>
type Table[T store.Record] struct {
	client *Client
	spec   store.TableSpec
}

// NewTable cria uma nova instância de Table
func NewTable[T store.Record](client *Client, spec store.TableSpec) *Table[T] {
	return &Table[T]{client: client, spec: spec}
}

func (t *Table[T]) request(ctx context.Context) *resty.Request {
	return t.client.http.R().SetContext(ctx).SetError(&Error{})
}

func (t *Table[T]) path() string {
	return "/" + t.spec.Name
}

// List busca os registros que atendem ao filtro
func (t *Table[T]) List(ctx context.Context, filter store.Filter) ([]T, error) {
	if err := t.spec.ValidateFilter(filter); err != nil {
		return nil, err
	}

	params := filterParams(filter)
	params.Set("select", "*")
	order := filter.Order
	if order == "" {
		order = t.spec.Order
	}
	if order != "" {
		params.Set("order", order+".asc")
	}

	var rows []T
	resp, err := t.request(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&rows).
		Get(t.path())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.spec.Name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listing %s: %w", t.spec.Name, responseError(resp))
	}
	return rows, nil
}

// Get busca um registro pelo id
func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	var rows []T
	resp, err := t.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", "eq."+id).
		SetQueryParam("limit", "1").
		SetResult(&rows).
		Get(t.path())
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", t.spec.Name, id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("getting %s %s: %w", t.spec.Name, id, byIDError(id, responseError(resp)))
	}
	return first(rows, t.spec.Name, id)
}

// Insert grava todos os registros em uma única requisição
func (t *Table[T]) Insert(ctx context.Context, records []T) ([]T, error) {
	if len(records) == 0 {
		return nil, nil
	}

	var rows []T
	resp, err := t.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetBody(records).
		SetResult(&rows).
		Post(t.path())
	if err != nil {
		return nil, fmt.Errorf("inserting into %s: %w", t.spec.Name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("inserting into %s: %w", t.spec.Name, valueError(responseError(resp)))
	}
	return rows, nil
}

// Update aplica uma atualização parcial ao registro
func (t *Table[T]) Update(ctx context.Context, id string, patch store.Patch) (*T, error) {
	if err := t.spec.ValidatePatch(patch); err != nil {
		return nil, err
	}

	var rows []T
	resp, err := t.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetQueryParam("id", "eq."+id).
		SetBody(patch).
		SetResult(&rows).
		Patch(t.path())
	if err != nil {
		return nil, fmt.Errorf("updating %s %s: %w", t.spec.Name, id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("updating %s %s: %w", t.spec.Name, id, byIDError(id, responseError(resp)))
	}
	return first(rows, t.spec.Name, id)
}

// Delete remove o registro; um id inexistente resulta em store.ErrNotFound
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	var rows []T
	resp, err := t.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetQueryParam("id", "eq."+id).
		SetResult(&rows).
		Delete(t.path())
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.spec.Name, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("deleting %s %s: %w", t.spec.Name, id, byIDError(id, responseError(resp)))
	}
	if len(rows) == 0 {
		return fmt.Errorf("deleting %s %s: %w", t.spec.Name, id, store.ErrNotFound)
	}
	return nil
}

func first[T any](rows []T, table, id string) (*T, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", table, id, store.ErrNotFound)
	}
	return &rows[0], nil
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
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == invalidTextRepresentation
}

func filterParams(filter store.Filter) url.Values {
	params := url.Values{}
	for _, cond := range filter.Conditions {
		params.Add(cond.Column, string(cond.Op)+"."+formatValue(cond.Value))
	}
	return params
}

func formatValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
