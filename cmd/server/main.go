package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/github-connector/docs"
	"github.com/KOFI-GYIMAH/github-connector/internal/app"
	"github.com/KOFI-GYIMAH/github-connector/internal/config"
	"github.com/KOFI-GYIMAH/github-connector/internal/handler"
	md "github.com/KOFI-GYIMAH/github-connector/internal/middleware"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title GitHub Connector
// @version 1.0.0
// @description Local host for the GitHub connector function: lists open issues, branches and open pull requests of one repository.
// @host localhost:8081
// @BasePath /v1
func main() {
	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	dispatcher, cleanup := app.NewDispatcher(cfg)
	defer cleanup()

	// * Create API server
	apiHandler := handler.NewHTTPHandler(dispatcher)
	router := mux.NewRouter()
	router.Use(md.RecoveryMiddleware)
	router.Use(md.LoggingMiddleware)
	api := router.PathPrefix("/v1").Subrouter()

	apiHandler.RegisterRoutes(api)
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
