package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/analyses"
	"github.com/matheusmosca/discrepometro/internal/companies"
	"github.com/matheusmosca/discrepometro/internal/config"
	"github.com/matheusmosca/discrepometro/internal/stock"
	"github.com/matheusmosca/discrepometro/internal/transactions"
	"github.com/matheusmosca/discrepometro/internal/web"
)

const sessionName = "discrepometro"

// Services agrupa os use cases expostos pela API
type Services struct {
	Companies    *companies.UseCase
	Transactions *transactions.UseCase
	Stock        *stock.UseCase
	Analyses     *analyses.UseCase
}

// NewRouter monta o roteador gin com middlewares, rotas das entidades,
// painel, preferências e a rota de página não encontrada
func NewRouter(cfg *config.Config, svc Services, log *zap.Logger, tracer trace.Tracer) (*gin.Engine, error) {
	if err := web.SetupValidator(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	if cfg.Telemetry.Enabled {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions)
	corsConfig.AddExposeHeaders("Content-Disposition")
	r.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	companies.NewHandler(svc.Companies, log, tracer).Register(api)
	transactions.NewHandler(svc.Transactions, log, tracer).Register(api)
	stock.NewHandler(svc.Stock, log, tracer).Register(api)
	analyses.NewHandler(svc.Analyses, log, tracer).Register(api)

	NewDashboardHandler(svc, log, tracer).Register(api)
	registerPreferences(api)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": web.NotFound})
	})
	return r, nil
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request", fields...)
			return
		}
		log.Debug("request", fields...)
	}
}
