package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indica que nenhum registro corresponde ao id informado
	ErrNotFound = errors.New("record not found")

	// ErrInvalidColumn indica uma coluna fora da lista da tabela
	ErrInvalidColumn = errors.New("invalid column")

	// ErrInvalidValue indica um valor recusado pelo banco, como um UUID malformado
	ErrInvalidValue = errors.New("invalid value")
)

// Record é implementado por toda entidade persistida
type Record interface {
	// Fields retorna os valores das colunas gravadas em um insert
	Fields() map[string]any
}

// Table define as operações CRUD de uma tabela do data store remoto
type Table[T Record] interface {
	List(ctx context.Context, filter Filter) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, records []T) ([]T, error)
	Update(ctx context.Context, id string, patch Patch) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Patch contém as colunas alteradas em uma atualização parcial
type Patch map[string]any

// TableSpec descreve uma tabela: nome, colunas aceitas e ordenação padrão
type TableSpec struct {
	Name    string
	Columns []string
	Order   string
}

// HasColumn verifica se a coluna pertence à tabela
func (s TableSpec) HasColumn(column string) bool {
	return slices.Contains(s.Columns, column)
}

// ValidatePatch garante que todas as colunas do patch existem na tabela
func (s TableSpec) ValidatePatch(patch Patch) error {
	for column := range patch {
		if column == "id" || !s.HasColumn(column) {
			return fmt.Errorf("%w: %s.%s", ErrInvalidColumn, s.Name, column)
		}
	}
	return nil
}

// ValidateFilter garante que condições e ordenação usam colunas da tabela
func (s TableSpec) ValidateFilter(filter Filter) error {
	for _, cond := range filter.Conditions {
		if !s.HasColumn(cond.Column) {
			return fmt.Errorf("%w: %s.%s", ErrInvalidColumn, s.Name, cond.Column)
		}
		if !cond.Op.Valid() {
			return fmt.Errorf("unsupported operator %q", cond.Op)
		}
	}
	if filter.Order != "" && !s.HasColumn(filter.Order) {
		return fmt.Errorf("%w: %s.%s", ErrInvalidColumn, s.Name, filter.Order)
	}
	return nil
}

// Operator representa os operadores de filtro suportados
type Operator string

const (
	OpEq  Operator = "eq"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
)

// Valid verifica se o operador é suportado
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpGte, OpLt, OpLte:
		return true
	}
	return false
}

// MalformedID informa se o id não pode existir em uma coluna UUID
func MalformedID(id string) bool {
	_, err := uuid.Parse(id)
	return err != nil
}

// Condition é um predicado simples sobre uma coluna
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

// Filter agrupa as condições (combinadas com AND) e a ordenação de uma listagem
type Filter struct {
	Conditions []Condition
	Order      string
}

// Where adiciona uma condição ao filtro
func (f Filter) Where(column string, op Operator, value any) Filter {
	f.Conditions = append(slices.Clone(f.Conditions), Condition{Column: column, Op: op, Value: value})
	return f
}
