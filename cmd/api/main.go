package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/config"
	"sowin-pos/internal/httpserver"
	categoryrepo "sowin-pos/internal/repository/category"
	entryrepo "sowin-pos/internal/repository/entry"
	movementrepo "sowin-pos/internal/repository/movement"
	productrepo "sowin-pos/internal/repository/product"
	salerepo "sowin-pos/internal/repository/sale"
	supplierrepo "sowin-pos/internal/repository/supplier"
	terminalrepo "sowin-pos/internal/repository/terminal"
	userrepo "sowin-pos/internal/repository/user"
	accountsvc "sowin-pos/internal/service/account"
	advisorysvc "sowin-pos/internal/service/advisory"
	catalogsvc "sowin-pos/internal/service/catalog"
	dashboardsvc "sowin-pos/internal/service/dashboard"
	inventorysvc "sowin-pos/internal/service/inventory"
	reportsvc "sowin-pos/internal/service/report"
	salesvc "sowin-pos/internal/service/sale"
	terminalsvc "sowin-pos/internal/service/terminal"
	"sowin-pos/internal/stockevents"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, closeStore, err := terminalrepo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open terminal store: %v", err)
	}
	defer closeStore()

	api := backend.New(cfg.BackendURL, backend.Options{
		Timeout:     cfg.BackendTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		Logger:      logger,
	})

	var events stockevents.Bus = stockevents.NewLocal()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		events = stockevents.NewRedis(rdb, cfg.RedisChannel, logger)
		logger.Printf("stock events via redis %s channel=%s", cfg.RedisAddr, cfg.RedisChannel)
	}

	productRepo := productrepo.NewREST(api, logger)
	saleRepo := salerepo.NewREST(api)
	entryRepo := entryrepo.NewREST(api)

	catalogService := catalogsvc.New(productRepo)
	saleService := salesvc.New(catalogService, saleRepo, events, logger)
	registry := salesvc.NewRegistry()
	accountService := accountsvc.New(userrepo.NewREST(api), store, cfg.TerminalID, logger)
	inventoryService := inventorysvc.New(inventorysvc.Repos{
		Products:   productRepo,
		Categories: categoryrepo.NewREST(api),
		Suppliers:  supplierrepo.NewREST(api),
		Entries:    entryRepo,
		Movements:  movementrepo.NewREST(api),
	}, events, logger)
	dashboardService := dashboardsvc.New(productRepo, saleRepo, entryRepo)
	preferenceService := terminalsvc.New(store, cfg.TerminalID)

	var printer reportsvc.Printer
	if cfg.PrintDir != "" {
		pdf := reportsvc.NewPDFPrinter(cfg.PrintDir, logger)
		defer pdf.Close()
		printer = pdf
	}
	reportService := reportsvc.New(saleRepo, registry, printer, logger)

	board := advisorysvc.NewBoard(cfg.NotificationGrace, nil)
	refresher := advisorysvc.NewRefresher(catalogService, board, events, cfg.AdvisoryInterval, logger)
	go refresher.Run(ctx)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, cfg.CORSOrigins, httpserver.Deps{
		Store:         store,
		Accounts:      accountService,
		Catalog:       catalogService,
		Sales:         saleService,
		Sessions:      registry,
		Notifications: board,
		Reports:       reportService,
		Inventory:     inventoryService,
		Dashboard:     dashboardService,
		Preferences:   preferenceService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s terminal=%s", cfg.HTTPAddr, cfg.TerminalID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
