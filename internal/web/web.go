package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/importer"
	"github.com/matheusmosca/discrepometro/internal/store"
	"github.com/matheusmosca/discrepometro/internal/validation"
)

// ImportFailed é a mensagem única de falha de importação
const ImportFailed = "Ocorreu um erro ao importar o arquivo"

// NotFound é a resposta das rotas inexistentes
const NotFound = "Página não encontrada"

// Messages agrupa os textos exibidos ao usuário para uma entidade
type Messages struct {
	Empty  string
	Load   string
	Save   string
	Delete string
}

// ListResponse é o corpo das listagens
type ListResponse[T any] struct {
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

// List responde 200 com os registros; uma lista vazia leva a mensagem de estado vazio
func List[T any](c *gin.Context, data []T, empty string) {
	if data == nil {
		data = []T{}
	}
	resp := ListResponse[T]{Data: data, Total: len(data)}
	if len(data) == 0 {
		resp.Message = empty
	}
	c.JSON(http.StatusOK, resp)
}

// Status traduz um erro de use case no código HTTP
func Status(err error) int {
	var (
		validationErrs validator.ValidationErrors
		lineErr        *importer.LineError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, store.ErrInvalidColumn),
		errors.Is(err, store.ErrInvalidValue),
		errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, importer.ErrUnsupportedFormat),
		errors.Is(err, importer.ErrMalformed),
		errors.Is(err, http.ErrMissingFile),
		errors.As(err, &lineErr),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Fail registra o erro (log e span) e responde com a mensagem genérica da ação.
// Erros de validação também levam o detalhe, para o formulário apontar o campo.
func Fail(c *gin.Context, log *zap.Logger, span trace.Span, err error, message string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, message)

	status := Status(err)
	log.Error("❌ "+message,
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.FullPath()),
		zap.String("id", c.Param("id")),
	)

	body := gin.H{"error": message}
	if status == http.StatusBadRequest {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}

// BindFailed responde 400 para um corpo de requisição inválido
func BindFailed(c *gin.Context, span trace.Span, err error, message string) {
	span.RecordError(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
}

// Upload lê o arquivo multipart "file" com as opções "delimitador" e "codificacao"
func Upload(c *gin.Context) (*importer.Sheet, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	opts := importer.Options{}
	switch d := []rune(c.PostForm("delimitador")); len(d) {
	case 0:
	case 1:
		opts.Delimiter = d[0]
	default:
		return nil, fmt.Errorf("%w: delimitador deve ter um caractere, recebido %q", importer.ErrMalformed, string(d))
	}
	switch c.PostForm("codificacao") {
	case "latin1", "iso-8859-1", "ISO-8859-1":
		opts.Latin1 = true
	}
	return importer.Read(file, header.Filename, opts)
}

// ImportResponse é o corpo de uma importação bem-sucedida
type ImportResponse struct {
	Imported int                      `json:"importados"`
	Ignored  []importer.IgnoredHeader `json:"cabecalhos_ignorados,omitempty"`
}

// SetupValidator registra as regras do domínio no validator usado pelo gin
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return validation.Register(v)
}
