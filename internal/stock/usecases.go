package stock

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

// UseCase contém as operações sobre registros de estoque
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

// List retorna os registros de estoque, opcionalmente de uma única empresa
func (uc *UseCase) List(ctx context.Context, empresaID string) ([]Snapshot, error) {
	var filter store.Filter
	if empresaID != "" {
		filter = filter.Where("empresa_id", store.OpEq, empresaID)
	}
	return uc.repository.List(ctx, filter)
}

// Get busca um registro de estoque pelo id
func (uc *UseCase) Get(ctx context.Context, id string) (*Snapshot, error) {
	return uc.repository.Get(ctx, id)
}

// Create valida e grava um novo registro de estoque
func (uc *UseCase) Create(ctx context.Context, s Snapshot) (*Snapshot, error) {
	s.ID = uuid.New().String()
	if err := validation.Struct(s); err != nil {
		return nil, err
	}

	rows, err := uc.repository.Insert(ctx, []Snapshot{s})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no rows", Table.Name)
	}

	uc.log.Info("✅ Registro de estoque criado", zap.String("id", rows[0].ID))
	return &rows[0], nil
}

// Update aplica uma atualização parcial
func (uc *UseCase) Update(ctx context.Context, id string, input SnapshotPatch) (*Snapshot, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	patch := input.Patch()
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: nenhum campo para atualizar", validation.ErrInvalid)
	}

	s, err := uc.repository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	uc.log.Info("✅ Registro de estoque atualizado", zap.String("id", id))
	return s, nil
}

// Delete remove o registro de estoque
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repository.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info("🗑️ Registro de estoque excluído", zap.String("id", id))
	return nil
}

// Import grava todas as linhas da planilha em um único insert
func (uc *UseCase) Import(ctx context.Context, sheet *importer.Sheet) (*importer.Result[Snapshot], error) {
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
	uc.log.Info("📥 Registros de estoque importados", zap.Int("rows", len(rows)), zap.Int("ignored_headers", len(result.Ignored)))
	return result, nil
}
