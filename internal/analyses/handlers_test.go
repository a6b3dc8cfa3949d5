package analyses

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/store/storetest"
	"github.com/matheusmosca/discrepometro/internal/web"
)

func newTestRouter(t *testing.T, repo *storetest.MockTable[Analysis]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	require.NoError(t, web.SetupValidator())
	r := gin.New()
	uc := NewUseCase(repo, zap.NewNop(), nil)
	NewHandler(uc, zap.NewNop(), noop.NewTracerProvider().Tracer("test")).Register(r.Group("/api"))
	return r
}

func TestHandler_DiscrepanciesEmpty(t *testing.T) {
	repo := &storetest.MockTable[Analysis]{}
	repo.On("List", mock.Anything, store.Filter{}).Return([]Analysis{
		{ID: "ok", EstoqueInicial2021: 1, EstoqueFinal2021: 1},
	}, nil)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/discrepancias", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0,"message":"Nenhuma discrepância encontrada."}`, w.Body.String())
}

func TestHandler_ListDecorates(t *testing.T) {
	repo := &storetest.MockTable[Analysis]{}
	repo.On("List", mock.Anything, store.Filter{}).Return([]Analysis{
		{ID: "a", Produto: "Parafuso", EstoqueInicial2021: 10, TotalEntradas: 2, TotalSaidas: 1, EstoqueFinal2021: 10},
	}, nil)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analises", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"estoque_final_calculado":11`)
	assert.Contains(t, w.Body.String(), `"diferenca":-1`)
	assert.Contains(t, w.Body.String(), `"tem_discrepancia":true`)
}

func TestHandler_Export(t *testing.T) {
	repo := &storetest.MockTable[Analysis]{}
	repo.On("List", mock.Anything, store.Filter{}).Return([]Analysis{{ID: "a", Produto: "Parafuso"}}, nil)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analises/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestHandler_DiscrepanciesBadFilter(t *testing.T) {
	repo := &storetest.MockTable[Analysis]{}

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/discrepancias?fonte=SPED", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
