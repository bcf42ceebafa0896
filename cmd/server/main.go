package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mooncircle/mooncircle/internal/config"
	"github.com/mooncircle/mooncircle/internal/db"
	httpx "github.com/mooncircle/mooncircle/internal/http"
	"github.com/mooncircle/mooncircle/internal/i18n"
	"github.com/mooncircle/mooncircle/internal/ledger"
	"github.com/mooncircle/mooncircle/internal/notifications"
	"github.com/mooncircle/mooncircle/internal/notify"
	"github.com/mooncircle/mooncircle/internal/observability"
	"github.com/mooncircle/mooncircle/internal/repo/cached"
	"github.com/mooncircle/mooncircle/internal/repo/postgres"
)

func main() {
	// .env is a dev convenience; in production the environment is already set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	if cfg.TracingEnabled {
		shutdownTracer, err := observability.InitTracer(context.Background(), "mooncircle", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	if err := db.RunMigrations(cfg.DBURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.DBURL)
	if err != nil {
		log.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.SeedEvents {
		ctx, cancel := config.WithTimeout(10 * time.Second)
		err := db.SeedEvents(ctx, pool)
		cancel()

		if err != nil {
			log.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	locale, err := i18n.Load(cfg.Locale)
	if err != nil {
		log.Error("locale load failed", "locale", cfg.Locale, "err", err)
		os.Exit(1)
	}

	eventsRepo := postgres.NewEventsRepo(pool, prom)
	registrationsRepo := postgres.NewRegistrationsRepo(pool, prom)
	contactRepo := postgres.NewContactRepo(pool, prom)

	// the pages read through a short cache; the ledger keeps the raw repo so
	// seat checks always see fresh rows
	cachedEvents := cached.NewEvents(eventsRepo, 5*time.Second)

	var base notifications.Notifier

	switch cfg.MailDriver {
	case "smtp":
		base = notifications.NewSMTPNotifier(notifications.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			From:      cfg.MailFrom,
			AdminAddr: cfg.MailAdmin,
		}, prom)
	default:
		base = notifications.NewLogNotifier(log)
	}

	notifier := notifications.NewProtectedNotifier(base, notifications.ProtectedNotifierConfig{
		Timeout: cfg.MailTimeout,
	})

	dispatcher := notify.NewDispatcher(log, 2, 64)

	led := ledger.New(ledger.Config{
		Events:        eventsRepo,
		Registrations: registrationsRepo,
		Contacts:      contactRepo,
		Notifier:      notifier,
		Dispatcher:    dispatcher,
		Retryable:     postgres.IsRetryable,
		Locale:        locale,
		Log:           log,
		Prom:          prom,
	})

	router := httpx.NewRouter(httpx.Deps{
		Cfg:      cfg,
		Log:      log,
		Pool:     pool,
		Prom:     prom,
		Registry: registry,
		Locale:   locale,

		Events:        cachedEvents,
		Registrations: registrationsRepo,
		RegList:       registrationsRepo,
		Contacts:      contactRepo,

		Registrar: led,
		Submitter: led,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// registration commits retry with backoff, so writes get headroom
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "mail_driver", cfg.MailDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		// let queued confirmation mails finish before the process exits
		if err := dispatcher.Close(ctx); err != nil {
			log.Error("notification drain incomplete", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
