package stock

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/store/storetest"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

func newTestUseCase() (*UseCase, *storetest.MockTable[Snapshot]) {
	repo := &storetest.MockTable[Snapshot]{}
	return NewUseCase(repo, zap.NewNop(), nil), repo
}

func TestList_ByCompany(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	repo.On("List", ctx, store.Filter{}.Where("empresa_id", store.OpEq, "e1")).Return([]Snapshot{{ID: "1"}}, nil)

	rows, err := uc.List(ctx, "e1")

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	repo.AssertExpectations(t)
}

func TestCreate_ZeroQuantityAllowed(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()
	s := Snapshot{Produto: "Parafuso", DataBase: store.NewDate(2022, time.February, 28)}

	repo.On("Insert", ctx, mock.Anything).Return([]Snapshot{s}, nil)

	_, err := uc.Create(ctx, s)

	require.NoError(t, err)
}

func TestCreate_NegativeQuantityRejected(t *testing.T) {
	uc, repo := newTestUseCase()
	s := Snapshot{Produto: "Parafuso", QuantidadeFinal: -1, DataBase: store.NewDate(2022, time.February, 28)}

	_, err := uc.Create(context.Background(), s)

	assert.ErrorIs(t, err, validation.ErrInvalid)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestImport_XLSX(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Produto", "Quantidade Final", "Data Base", "Empresa ID"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Parafuso", 120, "2022-02-28", "e1"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Porca", "7,5", "28/02/2022", "e1"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	sheet, err := importer.Read(&buf, "estoque.xlsx", importer.Options{})
	require.NoError(t, err)

	var inserted []Snapshot
	repo.On("Insert", ctx, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).([]Snapshot) }).
		Return([]Snapshot{{ID: "1"}, {ID: "2"}}, nil).
		Once()

	result, err := uc.Import(ctx, sheet)

	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	require.Len(t, inserted, 2)
	assert.Equal(t, 120.0, inserted[0].QuantidadeFinal)
	assert.Equal(t, 7.5, inserted[1].QuantidadeFinal)
	assert.Equal(t, store.NewDate(2022, time.February, 28), inserted[1].DataBase)
	repo.AssertExpectations(t)
}
