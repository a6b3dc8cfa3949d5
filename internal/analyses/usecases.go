package analyses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/telemetry"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

// UseCase contém as operações sobre análises de discrepância
type UseCase struct {
	repository Repository
	log        *zap.Logger
	metrics    *telemetry.Metrics
	now        func() time.Time
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository, log *zap.Logger, metrics *telemetry.Metrics) *UseCase {
	return &UseCase{
		repository: repository,
		log:        log,
		metrics:    metrics,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List retorna as análises que atendem aos filtros, já com o cálculo de discrepância
func (uc *UseCase) List(ctx context.Context, f ListFilter) ([]View, error) {
	filter, err := f.toFilter()
	if err != nil {
		return nil, err
	}

	rows, err := uc.repository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views, _ := NewViews(rows)
	return views, nil
}

// Discrepancies retorna apenas as análises em que o estoque final registrado
// difere do calculado
func (uc *UseCase) Discrepancies(ctx context.Context, f ListFilter) ([]View, error) {
	views, err := uc.List(ctx, f)
	if err != nil {
		return nil, err
	}

	flagged := make([]View, 0, len(views))
	for _, v := range views {
		if v.TemDiscrepancia {
			flagged = append(flagged, v)
		}
	}

	uc.metrics.RecordFlagged(ctx, len(flagged))
	return flagged, nil
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
		filter = filter.Where("tipo_discrepancia", store.OpEq, f.Tipo)
	}
	if f.Fonte != "" {
		filter = filter.Where("fonte", store.OpEq, f.Fonte)
	}
	if f.DataInicio != "" {
		start, err := store.ParseDate(f.DataInicio)
		if err != nil {
			return store.Filter{}, fmt.Errorf("%w: %v", validation.ErrInvalid, err)
		}
		filter = filter.Where("created_at", store.OpGte, start.Time)
	}
	if f.DataFim != "" {
		end, err := store.ParseDate(f.DataFim)
		if err != nil {
			return store.Filter{}, fmt.Errorf("%w: %v", validation.ErrInvalid, err)
		}
		// inclui o dia inteiro
		filter = filter.Where("created_at", store.OpLt, end.AddDate(0, 0, 1))
	}
	return filter, nil
}

// Get busca uma análise pelo id
func (uc *UseCase) Get(ctx context.Context, id string) (*View, error) {
	a, err := uc.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewView(*a)
	return &v, nil
}

// Create valida e grava uma nova análise
func (uc *UseCase) Create(ctx context.Context, a Analysis) (*View, error) {
	a.ID = uuid.New().String()
	a.CreatedAt = uc.now()
	a.UpdatedAt = a.CreatedAt
	if err := validation.Struct(a); err != nil {
		return nil, err
	}

	rows, err := uc.repository.Insert(ctx, []Analysis{a})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no rows", Table.Name)
	}

	v := NewView(rows[0])
	uc.log.Info("✅ Análise criada",
		zap.String("id", v.ID),
		zap.Bool("tem_discrepancia", v.TemDiscrepancia),
	)
	return &v, nil
}

// Update aplica uma atualização parcial e renova updated_at
func (uc *UseCase) Update(ctx context.Context, id string, input AnalysisPatch) (*View, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	patch := input.Patch()
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: nenhum campo para atualizar", validation.ErrInvalid)
	}
	patch["updated_at"] = uc.now()

	a, err := uc.repository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	uc.log.Info("✅ Análise atualizada", zap.String("id", id))
	v := NewView(*a)
	return &v, nil
}

// Delete remove a análise
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repository.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info("🗑️ Análise excluída", zap.String("id", id))
	return nil
}

// Import grava todas as linhas da planilha em um único insert
func (uc *UseCase) Import(ctx context.Context, sheet *importer.Sheet) (*importer.Result[Analysis], error) {
	result, err := importer.Decode(sheet, Mapping)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, importer.ErrEmptyFile
	}
	now := uc.now()
	for i := range result.Records {
		result.Records[i].ID = uuid.New().String()
		result.Records[i].CreatedAt = now
		result.Records[i].UpdatedAt = now
	}

	rows, err := uc.repository.Insert(ctx, result.Records)
	if err != nil {
		return nil, err
	}
	result.Records = rows

	_, flagged := NewViews(rows)
	uc.metrics.RecordImport(ctx, Table.Name, len(rows))
	uc.log.Info("📥 Análises importadas",
		zap.Int("rows", len(rows)),
		zap.Int("flagged", flagged),
		zap.Int("ignored_headers", len(result.Ignored)),
	)
	return result, nil
}
