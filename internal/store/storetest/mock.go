// Package storetest fornece um store.Table simulado para os testes dos use cases.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/matheusmosca/discrepometro/internal/store"
)

// MockTable simula uma tabela do data store
type MockTable[T store.Record] struct {
	mock.Mock
}

func (m *MockTable[T]) List(ctx context.Context, filter store.Filter) ([]T, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]T)
	return rows, args.Error(1)
}

func (m *MockTable[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*T)
	return row, args.Error(1)
}

func (m *MockTable[T]) Insert(ctx context.Context, records []T) ([]T, error) {
	args := m.Called(ctx, records)
	rows, _ := args.Get(0).([]T)
	return rows, args.Error(1)
}

func (m *MockTable[T]) Update(ctx context.Context, id string, patch store.Patch) (*T, error) {
	args := m.Called(ctx, id, patch)
	row, _ := args.Get(0).(*T)
	return row, args.Error(1)
}

func (m *MockTable[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
