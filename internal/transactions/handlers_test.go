package transactions

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/store/storetest"
	"github.com/matheusmosca/discrepometro/internal/web"
)

func newTestRouter(t *testing.T, repo *storetest.MockTable[Transaction]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	require.NoError(t, web.SetupValidator())
	r := gin.New()
	uc := NewUseCase(repo, zap.NewNop(), nil)
	NewHandler(uc, zap.NewNop(), noop.NewTracerProvider().Tracer("test")).Register(r.Group("/api"))
	return r
}

func TestHandler_ListWithQueryFilters(t *testing.T) {
	repo := &storetest.MockTable[Transaction]{}
	want := store.Filter{}.
		Where("tipo", store.OpEq, "entrada").
		Where("data", store.OpGte, store.NewDate(2021, time.February, 1))
	repo.On("List", mock.Anything, want).Return([]Transaction{}, nil)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transacoes?tipo=entrada&data_inicio=2021-02-01", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0,"message":"Nenhuma transação registrada."}`, w.Body.String())
	repo.AssertExpectations(t)
}

func TestHandler_ListUnknownTipo(t *testing.T) {
	repo := &storetest.MockTable[Transaction]{}

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transacoes?tipo=ajuste", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_DeleteMissing(t *testing.T) {
	repo := &storetest.MockTable[Transaction]{}
	repo.On("Delete", mock.Anything, "x").Return(store.ErrNotFound)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/transacoes/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Não foi possível excluir a transação"}`, w.Body.String())
}

func TestHandler_UpdateNullClearsColumns(t *testing.T) {
	repo := &storetest.MockTable[Transaction]{}
	repo.On("Update", mock.Anything, "t1", store.Patch{"empresa_id": nil, "tipo": nil}).
		Return(&Transaction{ID: "t1"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/transacoes/t1", strings.NewReader(`{"empresa_id":null,"tipo":null}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(t, repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestHandler_UpdateMalformedEmpresaID(t *testing.T) {
	repo := &storetest.MockTable[Transaction]{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/transacoes/t1", strings.NewReader(`{"empresa_id":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(t, repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetValorIsNumber(t *testing.T) {
	repo := &storetest.MockTable[Transaction]{}
	repo.On("Get", mock.Anything, "t1").Return(&Transaction{
		ID: "t1", Produto: "Parafuso", Quantidade: 1, CFOP: "5102",
		Valor: decimal.RequireFromString("10.5"), Data: store.NewDate(2021, time.March, 15),
	}, nil)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transacoes/t1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valor":10.5`)
}
