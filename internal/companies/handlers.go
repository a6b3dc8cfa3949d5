package companies

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/telemetry"
	"github.com/matheusmosca/discrepometro/internal/web"
)

var messages = web.Messages{
	Empty:  "Nenhuma empresa cadastrada.",
	Load:   "Não foi possível carregar os dados da empresa",
	Save:   "Não foi possível salvar os dados da empresa",
	Delete: "Não foi possível excluir a empresa",
}

// Handler contém os handlers HTTP de empresas
type Handler struct {
	useCase *UseCase
	log     *zap.Logger
	tracer  trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *UseCase, log *zap.Logger, tracer trace.Tracer) *Handler {
	return &Handler{
		useCase: useCase,
		log:     log,
		tracer:  tracer,
	}
}

// Register registra as rotas em /empresas
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/empresas")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/import", h.Import)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List é o endpoint de listagem
func (h *Handler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "list", Table.Name)
	defer span.End()

	companies, err := h.useCase.List(ctx)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Load)
		return
	}
	web.List(c, companies, messages.Empty)
}

// Get é o endpoint de detalhe
func (h *Handler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "get", Table.Name)
	defer span.End()
	span.SetAttributes(attribute.String("id", c.Param("id")))

	company, err := h.useCase.Get(ctx, c.Param("id"))
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Load)
		return
	}
	c.JSON(http.StatusOK, company)
}

// Create é o endpoint de cadastro
func (h *Handler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "create", Table.Name)
	defer span.End()

	var req Company
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BindFailed(c, span, err, messages.Save)
		return
	}

	company, err := h.useCase.Create(ctx, req)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Save)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// Update é o endpoint de atualização parcial
func (h *Handler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "update", Table.Name)
	defer span.End()
	span.SetAttributes(attribute.String("id", c.Param("id")))

	var req CompanyPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BindFailed(c, span, err, messages.Save)
		return
	}

	company, err := h.useCase.Update(ctx, c.Param("id"), req)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Save)
		return
	}
	c.JSON(http.StatusOK, company)
}

// Delete é o endpoint de exclusão
func (h *Handler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "delete", Table.Name)
	defer span.End()
	span.SetAttributes(attribute.String("id", c.Param("id")))

	if err := h.useCase.Delete(ctx, c.Param("id")); err != nil {
		web.Fail(c, h.log, span, err, messages.Delete)
		return
	}
	c.Status(http.StatusNoContent)
}

// Import é o endpoint de importação de planilha
func (h *Handler) Import(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "import", Table.Name)
	defer span.End()

	sheet, err := web.Upload(c)
	if err != nil {
		web.Fail(c, h.log, span, err, web.ImportFailed)
		return
	}

	result, err := h.useCase.Import(ctx, sheet)
	if err != nil {
		web.Fail(c, h.log, span, err, web.ImportFailed)
		return
	}
	c.JSON(http.StatusCreated, web.ImportResponse{Imported: len(result.Records), Ignored: result.Ignored})
}
