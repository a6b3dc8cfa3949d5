package transactions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/telemetry"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

// UseCase contém as operações sobre transações
type UseCase struct {
	repository Repository
	log        *zap.Logger
	metrics    *telemetry.Metrics
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository, log *zap.Logger, metrics *telemetry.Metrics) *UseCase {
	return &UseCase{
		repository: repository,
		log:        log,
		metrics:    metrics,
	}
}

// List retorna as transações que atendem aos filtros, ordenadas por data
func (uc *UseCase) List(ctx context.Context, f ListFilter) ([]Transaction, error) {
	filter, err := f.toFilter()
	if err != nil {
		return nil, err
	}
	return uc.repository.List(ctx, filter)
}

func (f ListFilter) toFilter() (store.Filter, error) {
	if err := validation.Struct(f); err != nil {
		return store.Filter{}, err
	}

	var filter store.Filter
	if f.EmpresaID != "" {
		filter = filter.Where("empresa_id", store.OpEq, f.EmpresaID)
	}
	if f.Tipo != "" {
		filter = filter.Where("tipo", store.OpEq, f.Tipo)
	}
	if f.CFOP != "" {
		filter = filter.Where("cfop", store.OpEq, f.CFOP)
	}
	for _, bound := range []struct {
		value string
		op    store.Operator
	}{{f.DataInicio, store.OpGte}, {f.DataFim, store.OpLte}} {
		if bound.value == "" {
			continue
		}
		date, err := store.ParseDate(bound.value)
		if err != nil {
			return store.Filter{}, fmt.Errorf("%w: %v", validation.ErrInvalid, err)
		}
		filter = filter.Where("data", bound.op, date)
	}
	return filter, nil
}

// Get busca uma transação pelo id
func (uc *UseCase) Get(ctx context.Context, id string) (*Transaction, error) {
	return uc.repository.Get(ctx, id)
}

// Create valida e grava uma nova transação
func (uc *UseCase) Create(ctx context.Context, t Transaction) (*Transaction, error) {
	t.ID = uuid.New().String()
	if err := validation.Struct(t); err != nil {
		return nil, err
	}

	rows, err := uc.repository.Insert(ctx, []Transaction{t})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no rows", Table.Name)
	}

	uc.log.Info("✅ Transação criada", zap.String("id", rows[0].ID), zap.String("cfop", rows[0].CFOP))
	return &rows[0], nil
}

// Update aplica uma atualização parcial
func (uc *UseCase) Update(ctx context.Context, id string, input TransactionPatch) (*Transaction, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	patch := input.Patch()
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: nenhum campo para atualizar", validation.ErrInvalid)
	}

	t, err := uc.repository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	uc.log.Info("✅ Transação atualizada", zap.String("id", id))
	return t, nil
}

// Delete remove a transação
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repository.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info("🗑️ Transação excluída", zap.String("id", id))
	return nil
}

// Import grava todas as linhas da planilha em um único insert
func (uc *UseCase) Import(ctx context.Context, sheet *importer.Sheet) (*importer.Result[Transaction], error) {
	result, err := importer.Decode(sheet, Mapping)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, importer.ErrEmptyFile
	}
	for i := range result.Records {
		result.Records[i].ID = uuid.New().String()
	}

	rows, err := uc.repository.Insert(ctx, result.Records)
	if err != nil {
		return nil, err
	}
	result.Records = rows

	uc.metrics.RecordImport(ctx, Table.Name, len(rows))
	uc.log.Info("📥 Transações importadas", zap.Int("rows", len(rows)), zap.Int("ignored_headers", len(result.Ignored)))
	return result, nil
}
