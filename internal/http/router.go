package http

import (
	"cna-backend/internal/common/logger"
	"cna-backend/internal/common/validation"
	httpH "cna-backend/internal/http/handlers"
	httpMW "cna-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterConfig struct {
	ServiceName string
	CORSOrigins []string
	Logger      logger.Logger
	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer

	HealthHandler    *httpH.HealthHandler
	DraftingHandler  *httpH.DraftingHandler
	TemplatesHandler *httpH.TemplatesHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.Metrics())
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/health", cfg.HealthHandler.Health)
		r.GET("/ready", cfg.HealthHandler.Ready)
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Catalog
	if cfg.TemplatesHandler != nil {
		r.GET("/templates", cfg.TemplatesHandler.List)
	}

	// Drafting
	if cfg.DraftingHandler != nil {
		r.POST("/resolve-template", httpMW.ValidateBody(validation.SchemaResolveTemplate), cfg.DraftingHandler.ResolveTemplate)
		r.POST("/analyze-notice", httpMW.ValidateBody(validation.SchemaAnalyzeNotice), cfg.DraftingHandler.AnalyzeNotice)
		r.POST("/draft/gst-reply", httpMW.ValidateBody(validation.SchemaGSTReply), cfg.DraftingHandler.GSTReply)
		r.POST("/cna/draft", httpMW.ValidateBody(validation.SchemaDraft), cfg.DraftingHandler.Draft)
	}

	return r
}
