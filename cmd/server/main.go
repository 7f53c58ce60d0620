package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"passwatch/internal/directory"
	"passwatch/internal/expiry"
	"passwatch/internal/notify"
	"passwatch/internal/pipeline"
	"passwatch/internal/platform/config"
	"passwatch/internal/platform/httpserver"
	"passwatch/internal/platform/logger"
	"passwatch/internal/platform/metrics"
	"passwatch/internal/render"
	"passwatch/internal/scheduler"
	httptransport "passwatch/internal/transport/http"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// All decision logic lives in the internal packages.
func main() {
	configPath := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	slogger, closeLog, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	m := metrics.New(prometheus.DefaultRegisterer)

	engine, err := render.New()
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}

	policy := expiry.Policy{MaxAgeDays: cfg.ActiveDirectory.MaxPasswordAgeDays}
	window := expiry.NewWindow(cfg.Reminders.WarningDays, cfg.Reminders.Messages, cfg.Reminders.DefaultMessage)

	emailChannel, err := notify.NewEmailChannel(cfg.Notifications.Email, window, engine)
	if err != nil {
		log.Fatalf("configure email channel: %v", err)
	}
	dispatcher, err := notify.New(
		[]notify.UserChannel{emailChannel},
		[]notify.BroadcastChannel{
			notify.NewTeamsChannel(cfg.Notifications.Teams),
			notify.NewSlackChannel(cfg.Notifications.Slack),
		},
		notify.WithLogger(slogger),
		notify.WithMetrics(m),
		notify.WithConcurrency(cfg.Notifications.Concurrency),
	)
	if err != nil {
		log.Fatalf("configure dispatcher: %v", err)
	}

	dir := directory.NewClient(cfg.ActiveDirectory, directory.WithLogger(slogger))

	pipe, err := pipeline.New(dir, dispatcher, policy, window,
		pipeline.WithLogger(slogger),
		pipeline.WithMetrics(m),
	)
	if err != nil {
		log.Fatalf("configure pipeline: %v", err)
	}

	sched, err := scheduler.New(cfg.Schedule.RunTime, func(ctx context.Context) {
		if _, err := pipe.RunOnce(ctx); err != nil {
			slogger.ErrorContext(ctx, "password expiration check failed", "error", err)
		}
	}, scheduler.WithLogger(slogger))
	if err != nil {
		log.Fatalf("configure scheduler: %v", err)
	}

	handler := httptransport.NewHandler(pipe, cfg.HTTP.AdminToken, slogger)
	srv := httpserver.New(cfg.HTTP.Addr, httptransport.NewRouter(handler))

	slogger.Info("starting passwatch",
		"addr", cfg.HTTP.Addr,
		"run_time", cfg.Schedule.RunTime,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	go sched.Start(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}
