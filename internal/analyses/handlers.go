package analyses

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/telemetry"
	"github.com/matheusmosca/discrepometro/internal/web"
)

var messages = web.Messages{
	Empty:  "Nenhuma análise de discrepância cadastrada.",
	Load:   "Não foi possível carregar os dados da análise",
	Save:   "Não foi possível salvar os dados da análise",
	Delete: "Não foi possível excluir a análise",
}

const noDiscrepancies = "Nenhuma discrepância encontrada."

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler contém os handlers HTTP de análises e do relatório de discrepâncias
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

// Register registra as rotas em /analises e /discrepancias
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/analises")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/export", h.Export)
	g.POST("/import", h.Import)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	rg.GET("/discrepancias", h.Discrepancies)
}

func (h *Handler) bindFilter(c *gin.Context, span trace.Span) (ListFilter, bool) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		web.BindFailed(c, span, err, messages.Load)
		return filter, false
	}
	return filter, true
}

// List é o endpoint de listagem
func (h *Handler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "list", Table.Name)
	defer span.End()

	filter, ok := h.bindFilter(c, span)
	if !ok {
		return
	}

	views, err := h.useCase.List(ctx, filter)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Load)
		return
	}
	web.List(c, views, messages.Empty)
}

// Discrepancies é o relatório de análises com discrepância
func (h *Handler) Discrepancies(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "discrepancies", Table.Name)
	defer span.End()

	filter, ok := h.bindFilter(c, span)
	if !ok {
		return
	}

	views, err := h.useCase.Discrepancies(ctx, filter)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Load)
		return
	}
	span.SetAttributes(attribute.Int("flagged", len(views)))
	web.List(c, views, noDiscrepancies)
}

// Export devolve as análises filtradas como planilha .xlsx
func (h *Handler) Export(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "export", Table.Name)
	defer span.End()

	filter, ok := h.bindFilter(c, span)
	if !ok {
		return
	}

	views, err := h.useCase.List(ctx, filter)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Load)
		return
	}

	filename := "analises-" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)
	if err := WriteXLSX(c.Writer, views); err != nil {
		span.RecordError(err)
		h.log.Error("❌ Falha ao gerar planilha", zap.Error(err))
	}
}

// Get é o endpoint de detalhe
func (h *Handler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "get", Table.Name)
	defer span.End()
	span.SetAttributes(attribute.String("id", c.Param("id")))

	view, err := h.useCase.Get(ctx, c.Param("id"))
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Load)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create é o endpoint de cadastro
func (h *Handler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "create", Table.Name)
	defer span.End()

	var req Analysis
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BindFailed(c, span, err, messages.Save)
		return
	}

	view, err := h.useCase.Create(ctx, req)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Save)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Update é o endpoint de atualização parcial
func (h *Handler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "update", Table.Name)
	defer span.End()
	span.SetAttributes(attribute.String("id", c.Param("id")))

	var req AnalysisPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BindFailed(c, span, err, messages.Save)
		return
	}

	view, err := h.useCase.Update(ctx, c.Param("id"), req)
	if err != nil {
		web.Fail(c, h.log, span, err, messages.Save)
		return
	}
	c.JSON(http.StatusOK, view)
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
