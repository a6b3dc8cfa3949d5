package companies

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
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
)

func newTestRouter(repo *storetest.MockTable[Company]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	uc := NewUseCase(repo, zap.NewNop(), nil)
	NewHandler(uc, zap.NewNop(), noop.NewTracerProvider().Tracer("test")).Register(r.Group("/api"))
	return r
}

func TestHandler_ListEmpty(t *testing.T) {
	repo := &storetest.MockTable[Company]{}
	repo.On("List", mock.Anything, store.Filter{}).Return([]Company{}, nil)

	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/empresas", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0,"message":"Nenhuma empresa cadastrada."}`, w.Body.String())
}

func TestHandler_DeleteMissing(t *testing.T) {
	repo := &storetest.MockTable[Company]{}
	repo.On("Delete", mock.Anything, "missing").Return(fmt.Errorf("empresas missing: %w", store.ErrNotFound))

	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/empresas/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Não foi possível excluir a empresa"}`, w.Body.String())
}

func TestHandler_CreateValidation(t *testing.T) {
	repo := &storetest.MockTable[Company]{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/empresas", bytes.NewBufferString(`{"nome":"Acme","cnpj":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Não foi possível salvar os dados da empresa")
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestHandler_Create(t *testing.T) {
	repo := &storetest.MockTable[Company]{}
	repo.On("Insert", mock.Anything, mock.Anything).
		Return([]Company{{ID: "1", Nome: "Acme", CNPJ: "12345678000199"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/empresas",
		bytes.NewBufferString(`{"nome":"Acme","cnpj":"12345678000199"}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"1","nome":"Acme","cnpj":"12345678000199"}`, w.Body.String())
}

func TestHandler_Import(t *testing.T) {
	repo := &storetest.MockTable[Company]{}
	repo.On("Insert", mock.Anything, mock.Anything).Return([]Company{{ID: "1"}, {ID: "2"}}, nil)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "empresas.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("nome;cnpj;telefone\nAcme;12345678000199;1\nBeta;98765432000188;2\n"))
	require.NoError(t, err)
	require.NoError(t, form.WriteField("delimitador", ";"))
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/empresas/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	newTestRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"importados":2`)
	assert.Contains(t, w.Body.String(), `"cabecalho":"telefone"`)
}

func TestHandler_ImportFailureIsGeneric(t *testing.T) {
	repo := &storetest.MockTable[Company]{}
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "empresas.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("nome,cnpj\nAcme,12345678000199\n"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/empresas/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	newTestRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Ocorreu um erro ao importar o arquivo"}`, w.Body.String())
}
