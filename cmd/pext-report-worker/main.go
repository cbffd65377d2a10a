package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pext/internal/amqp"
	"pext/internal/api"
	"pext/internal/cli"
	"pext/internal/export"
	"pext/internal/export/gsheet"
	"pext/internal/export/pdf"
	"pext/internal/localstore"
	"pext/internal/log"
	"pext/internal/services"
	"pext/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting pext-report-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	store, closeStore := cli.InitKV(logger, cfg)
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Failed to close kv store", log.FieldError, err)
		}
	}()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	sinks := []export.Sink{pdf.New(cfg.ReportDir)}
	if cfg.GSheetMirror {
		sheetSink, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets sink", log.FieldError, err)
			os.Exit(1)
		}
		sinks = append(sinks, sheetSink)
		logger.Info("Google Sheets mirror enabled")
	}

	dashboard := services.NewDashboardService(api.New(cfg.APIBaseURL), localstore.NewCashExpenses(store))
	reportWorker := worker.NewReportWorker(dashboard, sinks...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := amqpClient.ConsumeReportRequests(ctx, reportWorker.HandleReportRequest); err != nil {
			if err != context.Canceled {
				logger.Error("Report consumption failed", log.FieldError, err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(5 * time.Second):
		logger.Info("Worker shutdown complete")
	}
}
