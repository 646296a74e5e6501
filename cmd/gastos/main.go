package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gastos/internal/config"
	apphttp "gastos/internal/http"
	applog "gastos/internal/log"
	"gastos/internal/services"
	ports "gastos/internal/sheets"
	gsheet "gastos/internal/sheets/google"
	mem "gastos/internal/sheets/memory"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "gastos"})
	applog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store ports.RowStore
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:      cfg.SheetID,
			SheetName:          cfg.SheetName,
			ServiceAccountJSON: cfg.ServiceAccountJSON,
			ServiceAccountFile: cfg.ServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err, "backend", cfg.DataBackend)
			os.Exit(1)
		}
		store = cli
		logger.Info("Initialized Google Sheets backend", "sheet", cfg.SheetName)
	default:
		store = mem.New()
		logger.Info("Initialized memory backend")
	}

	intake := services.NewIntake(store, logger.WithComponent("intake"))
	dashboard := services.NewDashboard(store, logger.WithComponent("dashboard"))

	srv := apphttp.NewServer(":"+cfg.Port, intake, dashboard, logger.WithComponent("http"))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
