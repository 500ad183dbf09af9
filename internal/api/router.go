package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pcparts/catalog/internal/api/recovery"
	"github.com/pcparts/catalog/internal/catalog"
	"github.com/pcparts/catalog/internal/model"
)

// NewRouter mounts every catalog resource plus /api/health and /metrics.
func NewRouter(c *catalog.Catalog, paging Paging, isHealthy func() bool, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	for _, mw := range accessLog(log) {
		r.Use(mw)
	}
	r.Use(recovery.Middleware)
	r.Use(metricsMiddleware)

	for _, kind := range model.NamedDictionaries() {
		NewResourceHandler[catalog.DictionaryRequest, model.Dictionary](c.Dictionary(kind), paging).Register(r)
	}
	NewResourceHandler[catalog.FanSizeRequest, model.FanSize](c.FanSizes, paging).Register(r)
	NewResourceHandler[catalog.CPURequest, catalog.CPUResponse](c.CPUs, paging).Register(r)
	NewResourceHandler[catalog.GPURequest, catalog.GPUResponse](c.GPUs, paging).Register(r)
	NewResourceHandler[catalog.CoolerRequest, catalog.CoolerResponse](c.Coolers, paging).Register(r)
	NewResourceHandler[catalog.FanRequest, catalog.FanResponse](c.Fans, paging).Register(r)
	NewResourceHandler[catalog.HDDRequest, catalog.HDDResponse](c.HDDs, paging).Register(r)
	NewResourceHandler[catalog.SSDRequest, catalog.SSDResponse](c.SSDs, paging).Register(r)
	NewResourceHandler[catalog.RAMModuleRequest, catalog.RAMModuleResponse](c.RAMModules, paging).Register(r)

	r.HandleFunc("/api/health", NewHealthHandler(isHealthy).CheckHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}
