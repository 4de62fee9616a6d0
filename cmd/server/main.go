package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dish-dispatcher/internal/adminserver"
	"dish-dispatcher/internal/config"
	"dish-dispatcher/internal/driver"
	"dish-dispatcher/internal/kitchen"
)

func main() {
	configFile := flag.String("config", "config.json", "Path to configuration file")
	adminAddr := flag.String("admin-addr", ":8080", "Address for the read-only admin HTTP server")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		// zap.Logger.Fatal calls os.Exit(1) after logging, satisfying
		// spec.md §6's "non-zero on unreadable configuration".
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// The orders source must be readable before the kitchen loop ever
	// starts: an unreadable or malformed source is fatal (spec.md §6
	// "non-zero ... on unreadable order source", §7 "fatal errors surface
	// from the driver's startup path and terminate the process before the
	// loop starts"), not something only logged after the loop is already
	// running.
	records, err := driver.LoadRecords(cfg.OrdersSource)
	if err != nil {
		logger.Fatal("failed to load orders source", zap.Error(err))
	}

	k := kitchen.New(cfg, logger)
	go k.Run()

	d := driver.New(k, cfg.CustomerWaitBetweenOrders(), logger)
	watched := make(chan struct{})
	go func() {
		d.WatchDeliveries()
		close(watched)
	}()

	admin := &http.Server{
		Addr:    *adminAddr,
		Handler: adminserver.New(k, logger),
	}
	go func() {
		if err := admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin server stopped unexpectedly", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		// A bad individual record is skip-and-report, not fatal: the
		// orders source as a whole already passed LoadRecords.
		if err := d.SubmitAll(records); err != nil {
			logger.Warn("some order records were skipped", zap.Error(err))
		}
		// Wait for the kitchen to close Delivery once every courier ticket
		// is consumed.
		<-watched
		close(done)
	}()

	select {
	case <-done:
		logger.Info("orders exhausted, run completed")
	case <-stop:
		logger.Info("received interrupt signal, forcing shutdown")
		k.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := admin.Shutdown(shutdownCtx); err != nil {
		logger.Warn("admin server shutdown error", zap.Error(err))
	}
}
