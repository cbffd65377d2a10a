package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"pext/internal/amqp"
	"pext/internal/api"
	"pext/internal/cli"
	apphttp "pext/internal/http"
	"pext/internal/localstore"
	"pext/internal/log"
	"pext/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store, closeStore := cli.InitKV(logger, cfg)
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Failed to close kv store", log.FieldError, err)
		}
	}()

	// AMQP is optional; without it reports cannot be enqueued but the rest
	// of the API works.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	cashStore := localstore.NewCashExpenses(store)
	cash := services.NewCashExpenseService(cashStore, amqpClient)
	goals := services.NewSavingGoalService(localstore.NewSavingGoals(store))
	dashboard := services.NewDashboardService(api.New(cfg.APIBaseURL), cashStore)

	srv := apphttp.NewServer(":"+cfg.Port, cash, goals, dashboard, cfg.ReportDir)
	srv.Handler = log.Middleware(logger.WithComponent(log.ComponentHTTP))(srv.Handler)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.RequestTimeout
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if err := cash.Close(); err != nil {
			logger.Error("Service close error", log.FieldError, err)
		}
	})

	logger.Info("Starting pext server",
		"port", cfg.Port,
		"kv_backend", cfg.KVBackend,
		"api_base_url", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
