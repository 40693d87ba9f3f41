package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/namematch-backend/internal/config"
	"github.com/heartmarshall/namematch-backend/internal/transport/middleware"
	"github.com/heartmarshall/namematch-backend/internal/transport/rest"
)

type adminTokenValidator interface {
	ValidateAdminToken(token string) (string, error)
}

// routerDeps holds the handlers mounted by newRouter. adminAuth and
// rateLimiter are optional.
type routerDeps struct {
	matching    *rest.MatchingHandler
	health      *rest.HealthHandler
	admin       *rest.AdminHandler
	adminAuth   adminTokenValidator
	rateLimiter *middleware.RateLimiter
}

// newRouter builds the HTTP handler tree:
//
//	GET  /matching_rest        rate limited when enabled
//	GET  /live, /ready, /health
//	GET  /metrics
//	POST /admin/index/reload   admin token required (mounted only with a secret)
//	GET  /admin/index/stats    admin token required (mounted only with a secret)
func newRouter(logger *slog.Logger, cors config.CORSConfig, deps routerDeps) http.Handler {
	mux := http.NewServeMux()

	var limit middleware.Middleware
	if deps.rateLimiter != nil {
		limit = deps.rateLimiter.Limit()
	}
	mux.Handle("GET /matching_rest", middleware.Chain(limit)(http.HandlerFunc(deps.matching.Match)))

	mux.HandleFunc("GET /live", deps.health.Live)
	mux.HandleFunc("GET /ready", deps.health.Ready)
	mux.HandleFunc("GET /health", deps.health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	if deps.adminAuth != nil {
		requireAdmin := middleware.RequireAdmin(deps.adminAuth)
		mux.Handle("POST /admin/index/reload", requireAdmin(http.HandlerFunc(deps.admin.Reload)))
		mux.Handle("GET /admin/index/stats", requireAdmin(http.HandlerFunc(deps.admin.Stats)))
	} else {
		logger.Info("admin endpoints disabled: no admin.jwt_secret configured")
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cors),
	)(mux)
}
