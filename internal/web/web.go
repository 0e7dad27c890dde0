package web

import (
	"net/http"
	"os"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/config"
	"bitbucket.org/dropcars/vendor-gateway/internal/gateway"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func SetupRouter(
	cfg *config.Config,
	log *zerolog.Logger,
	deps gateway.Dependencies,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	startTime := time.Now()

	openApiContent, err := os.ReadFile(cfg.OpenAPILocation)
	if err != nil {
		log.Warn().Err(err).Str("location", cfg.OpenAPILocation).Msg("Unable to read OpenAPI document")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery).
		Use(OpenapiValidator(openApiContent, log))

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, gin.MIMEJSON, openApiContent)
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	pprof.Register(router)

	gateway.RegisterRoutes(router, deps)

	return router
}
