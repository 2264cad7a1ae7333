package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/metavr/dashauth/internal/dashauth/metrics"
	"github.com/metavr/dashauth/internal/dashauth/service"
	"github.com/metavr/dashauth/internal/dashauth/store"
	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"

	_ "github.com/metavr/dashauth/api/dashauth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessions     *sessionx.Service
	limits       httpx.RateLimits
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	HandshakeService *service.HandshakeService
	SessionService   *service.SessionService

	// Metrics is optional. When set, /metrics is served and every request is
	// counted.
	Metrics *metrics.Metrics
}

func NewRouter(
	sessions *sessionx.Service,
	st store.Store,
	limits httpx.RateLimits,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		sessions:     sessions,
		limits:       limits,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if r.Metrics != nil {
		r.middlewares = append(r.middlewares, r.Metrics.Middleware)
	}

	r.registerSession()
	r.registerHandshake()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			MetaVR Dashboard Session API
//	@version		0.1.0
//	@description	Cookie based sessions for the MetaVR dashboard.
//	@description
//	@description	The session lives in an HttpOnly cookie named "session" holding a signed JWT.
//	@description	Users arrive with a single-use handshake token minted by the backend.
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSession() {
	// GET /session - polled by every dashboard page
	r.Mux.Handle("GET /api/auth/session",
		httpx.Chain(&SessionHandler{Sessions: r.sessions, Metrics: r.Metrics},
			httpx.RateLimitByIP(r.limits.Public),
		),
	)

	// POST /session/refresh - moderate limit keyed by user
	refresh := &RefreshHandler{
		Sessions:       r.sessions,
		SessionService: r.SessionService,
		Metrics:        r.Metrics,
	}
	r.Mux.Handle("POST /api/auth/session/refresh",
		httpx.Chain(refresh,
			httpx.RequireSession(r.sessions),
			httpx.RateLimitBySession(r.limits.Moderate),
		),
	)

	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(LogoutHandler(r.sessions),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}

func (r *Router) registerHandshake() {
	// POST /handshake - strict limit by IP, this is where sessions are born
	h := &HandshakeHandler{
		Sessions:         r.sessions,
		HandshakeService: r.HandshakeService,
		Metrics:          r.Metrics,
	}
	r.Mux.Handle("POST /api/auth/handshake",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessions),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
