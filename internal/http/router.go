package http

import (
	"context"
	"log/slog"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mooncircle/mooncircle/internal/config"
	"github.com/mooncircle/mooncircle/internal/http/handlers"
	"github.com/mooncircle/mooncircle/internal/http/middlewares"
	"github.com/mooncircle/mooncircle/internal/i18n"
	"github.com/mooncircle/mooncircle/internal/observability"
)

// Deps carries everything the router wires into handlers. Repos and the
// ledger are built in main so the same instances also serve notifications.
type Deps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Pool     *pgxpool.Pool
	Prom     *observability.Prom
	Registry *prometheus.Registry
	Locale   *i18n.Locale

	Events        handlers.EventReader
	Registrations handlers.RegistrationReader
	RegList       handlers.RegistrationLister
	Contacts      handlers.ContactReader

	Registrar handlers.Registrar
	Submitter handlers.ContactSubmitter
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(64 << 10))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	if d.Cfg.TracingEnabled {
		r.Use(otelgin.Middleware("mooncircle"))
	}

	r.SetHTMLTemplate(loadTemplates())
	r.StaticFS("/static", stdhttp.FS(staticRoot()))

	// health
	ping := func() error {
		if d.Pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return d.Pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	views := handlers.NewViewBuilder(d.Locale)

	pages := handlers.NewPagesHandler(d.Events, views, d.Log)
	r.GET("/", pages.Home)
	r.GET("/oils", pages.Oils)
	r.GET("/water", pages.Water)
	r.GET("/yoga", pages.Yoga)
	r.GET("/green-food", pages.GreenFood)

	events := handlers.NewEventsHandler(d.Events, d.Registrations, d.Registrar, views, d.Log)
	r.GET("/events", events.List)
	r.GET("/events/:id", events.Detail)
	r.GET("/registration-confirmed/:id", events.Confirmed)

	contactH := handlers.NewContactHandler(d.Contacts, d.Submitter, d.Log)
	r.GET("/contact", contactH.Form)
	r.GET("/contact-sent/:id", contactH.Sent)

	// POSTs sit behind a per-IP limiter so a stuck browser or a script
	// cannot drain the seat pool checks.
	limiter := middlewares.NewRateLimiter(20, time.Minute)
	posts := r.Group("/", limiter.Middleware())
	posts.POST("/events/:id/register", events.Register)
	posts.POST("/contact", contactH.Submit)

	admin := handlers.NewAdminHandler(d.RegList, d.Cfg.SecretKey, d.Log)
	adminGroup := r.Group("/admin", admin.RequireSecret())
	adminGroup.GET("/registrations", admin.ListRegistrations)

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RenderNotFound(ctx)
	})

	return r
}
