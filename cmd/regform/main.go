package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/regform/pkg/config"
	"github.com/dmitrymomot/regform/pkg/formapi"
	"github.com/dmitrymomot/regform/pkg/httpserver"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/registration"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"SERVICE_NAME" envDefault:"regform"`
	LogLevel string `env:"LOG_LEVEL"`

	HTTP   httpserver.Config
	Engine registration.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(formapi.RequestIDExtractor()),
	)
	logger.SetAsDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := registration.New(
		registration.WithConfig(cfg.Engine),
		registration.WithLogger(log),
		registration.WithMetrics(reg),
	)

	router := formapi.NewRouter(engine, log)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	router.Get("/healthz", httpserver.HealthCheckHandler(log))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		// SSE streams end when their subscriptions close.
		httpserver.WithOnShutdown(func() { _ = engine.Close() }),
	)

	if err := srv.Run(context.Background(), router); err != nil {
		log.Error("Server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
