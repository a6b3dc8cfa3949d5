package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matheusmosca/discrepometro/internal/analyses"
	"github.com/matheusmosca/discrepometro/internal/telemetry"
	"github.com/matheusmosca/discrepometro/internal/transactions"
	"github.com/matheusmosca/discrepometro/internal/web"
)

const dashboardFailed = "Não foi possível carregar o painel"

// Dashboard é o resumo exibido na página inicial
type Dashboard struct {
	Empresas      int `json:"empresas"`
	Transacoes    int `json:"transacoes"`
	Estoque       int `json:"estoque"`
	Analises      int `json:"analises"`
	Discrepancias int `json:"discrepancias"`
}

// DashboardHandler contém o handler do painel
type DashboardHandler struct {
	services Services
	log      *zap.Logger
	tracer   trace.Tracer
}

// NewDashboardHandler cria uma nova instância de DashboardHandler
func NewDashboardHandler(services Services, log *zap.Logger, tracer trace.Tracer) *DashboardHandler {
	return &DashboardHandler{services: services, log: log, tracer: tracer}
}

// Register registra a rota /dashboard
func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Get)
}

// Get conta os registros de cada entidade e as análises com discrepância
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), h.tracer, "get", "dashboard")
	defer span.End()

	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := h.services.Companies.List(ctx)
		d.Empresas = len(rows)
		return err
	})
	g.Go(func() error {
		rows, err := h.services.Transactions.List(ctx, transactions.ListFilter{})
		d.Transacoes = len(rows)
		return err
	})
	g.Go(func() error {
		rows, err := h.services.Stock.List(ctx, "")
		d.Estoque = len(rows)
		return err
	})
	g.Go(func() error {
		views, err := h.services.Analyses.List(ctx, analyses.ListFilter{})
		d.Analises = len(views)
		for _, v := range views {
			if v.TemDiscrepancia {
				d.Discrepancias++
			}
		}
		return err
	})

	if err := g.Wait(); err != nil {
		web.Fail(c, h.log, span, err, dashboardFailed)
		return
	}
	c.JSON(http.StatusOK, d)
}
