package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"pedidos-backend/internal/auth"
	"pedidos-backend/internal/metrics"
	"pedidos-backend/internal/models"
	"pedidos-backend/internal/templates"
)

// OrderStore is the order accessor the handlers need.
type OrderStore interface {
	ListRecent(ctx context.Context, window time.Duration) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	Create(ctx context.Context, in models.OrderInput) (int64, error)
	Update(ctx context.Context, id int64, in models.OrderInput) (bool, error)
	SetActive(ctx context.Context, id int64, active int) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountByProduct(ctx context.Context) (map[string]int, error)
}

// CatalogStore lists the product and rosh lookups.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]string, error)
	ListAccessories(ctx context.Context) ([]string, error)
}

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.Session, error)
}

// Pinger reports store liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options wires the server's collaborators.
type Options struct {
	Log     zerolog.Logger
	DB      Pinger
	Orders  OrderStore
	Catalog CatalogStore
	Auth    Authenticator
	Metrics *metrics.Metrics

	Session      auth.SessionConfig
	RecentWindow time.Duration
	// Prices is the unit price per product name used by the summary.
	Prices map[string]float64
	// LockAPI gates /api behind the session check.
	LockAPI bool
}

// NewServer builds the echo instance with middleware and every route.
func NewServer(opts Options) (*echo.Echo, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Log))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.Secure())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "pedidos",
		Registerer: opts.Metrics.Registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(session.Middleware(auth.NewCookieStore(opts.Session)))

	h := &Handler{
		log:          opts.Log,
		db:           opts.DB,
		orders:       opts.Orders,
		catalog:      opts.Catalog,
		auth:         opts.Auth,
		sessions:     auth.NewSessions(opts.Session),
		metrics:      opts.Metrics,
		recentWindow: opts.RecentWindow,
		prices:       opts.Prices,
	}
	RegisterRoutes(e, h, opts.LockAPI)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
