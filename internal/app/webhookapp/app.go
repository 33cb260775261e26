package webhookapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gcfirestore "cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ivankudzin/tgevents/internal/config"
	fsinfra "github.com/ivankudzin/tgevents/internal/infra/firestore"
	"github.com/ivankudzin/tgevents/internal/infra/httpclient"
	"github.com/ivankudzin/tgevents/internal/infra/metrics"
	tginfra "github.com/ivankudzin/tgevents/internal/infra/telegram"
	fsrepo "github.com/ivankudzin/tgevents/internal/repo/firestore"
	pgrepo "github.com/ivankudzin/tgevents/internal/repo/postgres"
	modsvc "github.com/ivankudzin/tgevents/internal/services/moderation"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	firestore  *gcfirestore.Client
	postgres   *pgxpool.Pool
	httpRouter http.Handler
}

type stores struct {
	events        modsvc.EventRepo
	notifications modsvc.NotificationRepo
	firestore     *gcfirestore.Client
	postgres      *pgxpool.Pool
}

// New wires the webhook server. Any error here is a startup failure.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	bot, err := tginfra.NewBot(tginfra.Config{
		Token:       cfg.Bot.Token,
		APIEndpoint: cfg.Bot.APIEndpoint,
		HTTPClient:  httpclient.New(cfg.Bot.HTTPTimeout),
	}, log)
	if err != nil {
		st.close(log)
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	moderationService := modsvc.NewService(modsvc.Dependencies{
		Events:        st.events,
		Notifications: st.notifications,
		Bot:           bot,
		Recorder:      appMetrics,
		Logger:        log.Named("moderation"),
	})

	r := chi.NewRouter()
	ApplyMiddlewares(r, log, appMetrics)
	RegisterRoutes(r, Dependencies{
		Processor: moderationService,
		Gatherer:  registry,
		Logger:    log.Named("webhook"),
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		firestore:  st.firestore,
		postgres:   st.postgres,
		httpRouter: r,
	}, nil
}

func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (stores, error) {
	collections := cfg.Store.Collections

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := pgrepo.NewPool(ctx, cfg.Store.Postgres.DSN)
		if err != nil {
			return stores{}, fmt.Errorf("init postgres store: %w", err)
		}
		log.Info("document store ready", zap.String("driver", cfg.Store.Driver))
		return stores{
			events:        pgrepo.NewEventRepo(pool),
			notifications: pgrepo.NewNotificationRepo(pool),
			postgres:      pool,
		}, nil
	default:
		account, err := fsinfra.LoadServiceAccount(cfg.Store.Firestore.CredentialsJSON, cfg.Store.Firestore.CredentialsFile)
		if err != nil {
			return stores{}, fmt.Errorf("load firebase credentials: %w", err)
		}
		client, err := fsinfra.NewClient(ctx, account, cfg.Store.Firestore.ProjectID)
		if err != nil {
			return stores{}, fmt.Errorf("init firestore store: %w", err)
		}
		log.Info("document store ready",
			zap.String("driver", config.StoreDriverFirestore),
			zap.String("client_email", account.ClientEmail),
		)
		return stores{
			events:        fsrepo.NewEventRepo(client, collections.Events),
			notifications: fsrepo.NewNotificationRepo(client, collections.Notifications),
			firestore:     client,
		}, nil
	}
}

func (s stores) close(log *zap.Logger) {
	if s.postgres != nil {
		s.postgres.Close()
	}
	if s.firestore != nil {
		if err := s.firestore.Close(); err != nil {
			log.Warn("close firestore client", zap.Error(err))
		}
	}
}

func (a *App) Run() error {
	a.logger.Info("webhook server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.firestore != nil {
		if err := a.firestore.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
