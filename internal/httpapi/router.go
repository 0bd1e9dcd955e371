// SPDX-License-Identifier: MIT

// Package httpapi exposes solver sessions over HTTP.
//
// Routes:
//
//	POST   /api/problems          create and solve; body {"cost": [[...]]} or {"flat": [...]}
//	GET    /api/problems/:id      current assignment, cost and duals
//	PUT    /api/problems/:id/rows incremental row update; body adds "changed": [...]
//	PUT    /api/problems/:id/cols incremental column update
//	DELETE /api/problems/:id      drop the session
//	GET    /healthz               liveness
//	GET    /metrics               Prometheus exposition
//
// Responses wrap payloads as {"data": ...} and failures as {"error": {"code", "message"}}.
package httpapi

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/dynhung/internal/config"
	"github.com/katalvlaran/dynhung/internal/session"
)

// routeGroup registers httprouter handles under a common prefix.
type routeGroup struct {
	router *httprouter.Router
	prefix string
}

func newRouteGroup(router *httprouter.Router, prefix string) *routeGroup {
	return &routeGroup{router: router, prefix: prefix}
}

func (g *routeGroup) path(p string) string { return path.Join(g.prefix, p) }

func (g *routeGroup) GET(p string, h httprouter.Handle)    { g.router.GET(g.path(p), h) }
func (g *routeGroup) POST(p string, h httprouter.Handle)   { g.router.POST(g.path(p), h) }
func (g *routeGroup) PUT(p string, h httprouter.Handle)    { g.router.PUT(g.path(p), h) }
func (g *routeGroup) DELETE(p string, h httprouter.Handle) { g.router.DELETE(g.path(p), h) }

// Deps are the collaborators of the HTTP binding.
type Deps struct {
	Registry *session.Registry
	Log      *zap.Logger
	Gatherer prometheus.Gatherer // nil serves prometheus.DefaultGatherer
}

// NewHandler builds the complete middleware chain and router.
func NewHandler(cfg config.Config, deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// 24 bytes per JSON number is generous for float64 plus separators.
	maxBody := int64(cfg.MaxN)*int64(cfg.MaxN)*24 + 1<<16
	api := newProblemAPI(deps.Registry, log, maxBody)

	router := httprouter.New()
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.errorResponse(w, r, http.StatusNotFound, "not_found", "the requested resource could not be found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.errorResponse(w, r, http.StatusMethodNotAllowed, "method_not_allowed",
			r.Method+" is not supported for this resource")
	})

	api.Routes(newRouteGroup(router, "/api"))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	mwChain := []alice.Constructor{
		corsHandler.Handler, api.recoverPanic, Heartbeat("/healthz"), Logger(log), EnforceJSONHandler,
	}
	if cfg.RateLimit > 0 {
		mwChain = append(mwChain, api.Limit(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)))
	}
	if cfg.APITimeout > 0 {
		mwChain = append(mwChain, Timeout(cfg.APITimeout))
	}

	return alice.New(mwChain...).Then(router)
}
