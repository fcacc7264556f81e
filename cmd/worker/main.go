package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-registry/config"
	"github.com/jwalitptl/clinic-registry/internal/bootstrap"
	"github.com/jwalitptl/clinic-registry/internal/worker"
	"github.com/jwalitptl/clinic-registry/pkg/logger"
	"github.com/jwalitptl/clinic-registry/pkg/messaging"
	"github.com/jwalitptl/clinic-registry/pkg/metrics"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "clinic-worker",
		Short: "Consumes clinic registry events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log := bootstrap.NewLogger(cfg.Log)

	if cfg.Redis.URL == "" {
		return errors.New("redis.url is required for the worker")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, cfg.Metrics.Namespace)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker, _, err := bootstrap.NewBroker(ctx, cfg, log, m)
	if err != nil {
		log.Error(err, "failed to create broker")
		return err
	}
	defer broker.Close()

	srv := setupHealthCheck(cfg.Worker.Port, reg, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down...")
		cancel()
	}()

	consumer := worker.NewEventConsumer(messaging.NewBrokerAdapter(broker, log.ZL), cfg.Redis.Channel, log, m)
	err = consumer.Start(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error(shutdownErr, "health server forced to shutdown")
	}
	return err
}

func setupHealthCheck(port int, gatherer prometheus.Gatherer, log *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
	return srv
}
