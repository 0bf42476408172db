// Package httpx exposes the auth and todo services over HTTP using echo.
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AuthService is the credential side of the API.
type AuthService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

// TodoLister reads the todos owned by an account.
type TodoLister interface {
	List(ctx context.Context, userID string) ([]*models.Todo, error)
}

const (
	rateLimitRegister = 5
	rateLimitLogin    = 12
	rateWindowDefault = time.Minute
)

type Router struct {
	echo     *echo.Echo
	users    AuthService
	todos    TodoLister
	dbHealth func(context.Context) error
	limiter  RateLimiter
	logger   logging.Logger

	registerLimit int
	loginLimit    int
	rateWindow    time.Duration

	registry       *prometheus.Registry
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	rateLimitHits  *prometheus.CounterVec
}

// NewRouter builds the HTTP API. A nil limiter falls back to an in-memory
// one; dbHealth backs /healthz and may be nil.
func NewRouter(l logging.Logger, users AuthService, todos TodoLister, limiter RateLimiter, dbHealth func(context.Context) error) *Router {
	r := &Router{
		users:         users,
		todos:         todos,
		dbHealth:      dbHealth,
		limiter:       limiter,
		logger:        l.With("module", "http_server"),
		registerLimit: rateLimitRegister,
		loginLimit:    rateLimitLogin,
		rateWindow:    rateWindowDefault,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()

	srv := echo.New()
	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.HTTPErrorHandler = r.errorHandler
	// Rate limits key on the socket address; forwarding headers are client-controlled.
	srv.IPExtractor = echo.ExtractIPDirect()

	srv.Use(
		middleware.Recover(),
		r.requestID(),
		r.logRequests(),
		r.observe(),
	)

	auth := srv.Group("/auth")
	auth.POST("/register", r.handleRegister, r.withRateLimit(func() int { return r.registerLimit }))
	auth.POST("/login", r.handleLogin, r.withRateLimit(func() int { return r.loginLimit }))

	srv.GET("/todos", r.handleTodos, r.requireAuth)
	srv.GET("/healthz", r.handleHealth)
	srv.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	r.echo = srv
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.echo.ServeHTTP(w, req)
}

// Close releases the rate limiter.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}
