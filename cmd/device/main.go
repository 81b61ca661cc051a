package main

import (
	"context"
	"database/sql"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"esp_panel/internal/config"
	"esp_panel/internal/gpio"
	"esp_panel/internal/handlers"
	"esp_panel/internal/logger"
	"esp_panel/internal/repository"
	"esp_panel/internal/repository/db"
	"esp_panel/internal/sensor"
	"esp_panel/internal/server"
	"esp_panel/internal/service"
	"esp_panel/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	configDir       = "configs"
	shutdownTimeout = 10 * time.Second
)

// @title                       ESP panel device API
// @version                     1.0
// @description                 LED control and temperature readings of the ESP32 board.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(configDir)
	log := logger.Get(cfg.Log.Level)
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	sqlDB, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	probes, bus, err := sensor.NewProbes(cfg.Sensors)
	if err != nil {
		log.Fatalw("failed to open sensor bus", "transport", cfg.Sensors.Transport, "err", err)
	}
	defer closeQuietly(bus, "sensor_bus", log)

	publisher, err := telemetry.NewPublisher(cfg.MQTT)
	if err != nil {
		log.Fatalw("failed to connect mqtt", "broker", cfg.MQTT.Broker, "err", err)
	}
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services := service.NewService(repository.NewRepository(sqlDB), service.Deps{
		Pin:       gpio.NewMemoryPin(cfg.Led.Pin, log.Named("gpio")),
		Probes:    probes,
		Metrics:   telemetry.NewMetrics(reg),
		Publisher: publisher,
		Log:       log,
		Sampling: service.SamplingConfig{
			Retries:    cfg.Sensors.Retries,
			RetryDelay: cfg.Sensors.RetryDelay,
			AutoLed:    cfg.Led.Auto,
		},
		Auth: service.AuthConfig{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	})
	apiHandler := handlers.NewHandler(services, log.Named("http"), reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Sampler.Run(ctx, cfg.Sensors.Interval)
	log.Infow("sampler_started", "transport", cfg.Sensors.Transport, "probes", len(probes), "interval", cfg.Sensors.Interval)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func openDB(cfg config.DBConfig, log *logger.Logger) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		path = "app.db"
	}
	return db.InitDB(path)
}

func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

func closeQuietly(c io.Closer, what string, log *logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warnw("close_failed", "what", what, "err", err)
	}
}
