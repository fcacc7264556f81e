package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-registry/config"
	"github.com/jwalitptl/clinic-registry/internal/bootstrap"
	"github.com/jwalitptl/clinic-registry/internal/handler"
	"github.com/jwalitptl/clinic-registry/internal/handler/appointment"
	"github.com/jwalitptl/clinic-registry/internal/handler/doctor"
	"github.com/jwalitptl/clinic-registry/internal/handler/patient"
	"github.com/jwalitptl/clinic-registry/internal/handler/prescription"
	promhandler "github.com/jwalitptl/clinic-registry/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-registry/internal/middleware"
	"github.com/jwalitptl/clinic-registry/internal/router"
	"github.com/jwalitptl/clinic-registry/internal/service/clinic"
	"github.com/jwalitptl/clinic-registry/internal/service/event"
	"github.com/jwalitptl/clinic-registry/internal/worker"
	"github.com/jwalitptl/clinic-registry/pkg/auth"
	"github.com/jwalitptl/clinic-registry/pkg/messaging"
	"github.com/jwalitptl/clinic-registry/pkg/metrics"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	log := bootstrap.NewLogger(cfg.Log)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, cfg.Metrics.Namespace)

	// Initialize message broker
	broker, shared, err := bootstrap.NewBroker(ctx, cfg, log, m)
	if err != nil {
		log.Error(err, "failed to create broker")
		return err
	}
	defer broker.Close()

	// Without Redis nobody else can see the events, so consume them here.
	if !shared {
		consumer := worker.NewEventConsumer(messaging.NewBrokerAdapter(broker, log.ZL), cfg.Redis.Channel, log, m)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error(err, "in-process event consumer stopped")
			}
		}()
	}

	// Initialize services
	events := event.NewEventService(broker, cfg.Redis.Channel, m)
	svc := clinic.NewService(
		clinic.WithPublisher(events),
		clinic.WithMetrics(m),
		clinic.WithLogger(log),
	)

	// Initialize middleware
	var authMiddleware *middleware.AuthMiddleware
	if cfg.Auth.Enabled {
		authMiddleware = middleware.NewAuthMiddleware(auth.NewJWTService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL))
	}

	var promHandler *promhandler.Handler
	if cfg.Metrics.Enabled {
		promHandler = promhandler.New(reg, cfg.Metrics.Namespace)
	}

	routerConfig := router.RouterConfig{
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MetricsPath:    cfg.Metrics.Path,
		TrustedProxies: cfg.Server.TrustedProxies,
		Idempotency: middleware.IdempotencyConfig{
			TTL:             cfg.Idempotency.TTL,
			CleanupInterval: cfg.Idempotency.CleanupInterval,
		},
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerConfig.RateBurst = cfg.RateLimit.Burst
	}

	// Setup router
	r := router.NewRouter(
		log.ZL,
		authMiddleware,
		handler.NewHandler(bootstrap.Probes(broker)),
		promHandler,
		routerConfig,
		patient.NewHandler(svc),
		doctor.NewHandler(svc),
		appointment.NewHandler(svc),
		prescription.NewHandler(svc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Server.Port, "auth", cfg.Auth.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		log.Error(err, "failed to start server")
		return err
	case <-quit:
	}
	log.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "server forced to shutdown")
		return err
	}

	log.Info("server exited properly")
	return nil
}
