package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noid/internal/platform/metrics"
	id "noid/pkg/domain"
	"noid/pkg/platform/httputil"
	"noid/pkg/platform/middleware/metadata"
	"noid/pkg/platform/middleware/requestid"
	"noid/pkg/platform/middleware/requestlog"
	"noid/pkg/platform/middleware/requesttime"
	"noid/pkg/platform/middleware/version"
)

// Registrar mounts a module's routes on a versioned sub-router.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig holds the dependencies of NewRouter.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	V1       []Registrar
}

// NewRouter wires the middleware stack, the /v1 API and the operational
// endpoints. The transport layer holds no business logic.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(requestlog.Middleware(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/"+id.APIVersionV1.String(), func(r chi.Router) {
		r.Use(version.ExtractVersion(id.APIVersionV1))
		for _, reg := range cfg.V1 {
			reg.Register(r)
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "method_not_allowed"})
	})

	return r
}
