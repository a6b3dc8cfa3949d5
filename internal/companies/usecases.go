package companies

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

// UseCase contém as operações sobre empresas
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

// List retorna as empresas ordenadas por nome
func (uc *UseCase) List(ctx context.Context) ([]Company, error) {
	return uc.repository.List(ctx, store.Filter{})
}

// Get busca uma empresa pelo id
func (uc *UseCase) Get(ctx context.Context, id string) (*Company, error) {
	return uc.repository.Get(ctx, id)
}

// Create valida e grava uma nova empresa
func (uc *UseCase) Create(ctx context.Context, company Company) (*Company, error) {
	company.ID = uuid.New().String()
	if err := validation.Struct(company); err != nil {
		return nil, err
	}

	rows, err := uc.repository.Insert(ctx, []Company{company})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no rows", Table.Name)
	}

	uc.log.Info("✅ Empresa criada", zap.String("id", rows[0].ID))
	return &rows[0], nil
}

// Update aplica uma atualização parcial
func (uc *UseCase) Update(ctx context.Context, id string, input CompanyPatch) (*Company, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	patch := input.Patch()
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: nenhum campo para atualizar", validation.ErrInvalid)
	}

	company, err := uc.repository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	uc.log.Info("✅ Empresa atualizada", zap.String("id", id))
	return company, nil
}

// Delete remove a empresa
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repository.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info("🗑️ Empresa excluída", zap.String("id", id))
	return nil
}

// Import grava todas as linhas da planilha em um único insert
func (uc *UseCase) Import(ctx context.Context, sheet *importer.Sheet) (*importer.Result[Company], error) {
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
	uc.log.Info("📥 Empresas importadas", zap.Int("rows", len(rows)), zap.Int("ignored_headers", len(result.Ignored)))
	return result, nil
}
