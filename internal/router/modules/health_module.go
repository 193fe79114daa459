package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	handlers "github.com/oksasatya/go-event-registration/internal/interface/http"
)

// HealthModule serves GET /health and, when a gatherer is set, GET /metrics.
type HealthModule struct {
	Gatherer prometheus.Gatherer
}

func NewHealthModule(g prometheus.Gatherer) *HealthModule { return &HealthModule{Gatherer: g} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", handlers.Health)
	if m.Gatherer != nil {
		rg.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
	}
}
