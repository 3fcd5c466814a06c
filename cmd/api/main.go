package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rsfire/erp/internal/api"
	"github.com/rsfire/erp/internal/api/handlers"
	"github.com/rsfire/erp/internal/repository"
	"github.com/rsfire/erp/internal/services"
	"github.com/rsfire/erp/pkg/config"
	"github.com/rsfire/erp/pkg/database"
	"github.com/rsfire/erp/pkg/logger"
)

// @title           RS Fire ERP API
// @version         1.0
// @description     Projects and the employee-to-admin project completion workflow.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting ERP API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.Duration("store_timeout", cfg.StoreTimeout),
		zap.Bool("enforce_assignment", cfg.EnforceAssignment),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	// Services
	directory := services.NewEmployeeDirectory(employeeRepo)
	approvalSvc := services.NewApprovalService(projectRepo, approvalRepo, directory, services.ApprovalOptions{
		StoreTimeout:      cfg.StoreTimeout,
		EnforceAssignment: cfg.EnforceAssignment,
	})
	projectSvc := services.NewProjectService(projectRepo, cfg.ProjectIDSeed)

	router := api.NewRouter(api.Dependencies{
		AllowedOrigins:   cfg.AllowedOrigins(),
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
		Ping:             func(ctx context.Context) error { return database.Ping(ctx, db) },
		ApprovalsHandler: handlers.NewApprovalsHandler(approvalSvc),
		ProjectsHandler:  handlers.NewProjectsHandler(projectSvc),
		EmployeesHandler: handlers.NewEmployeesHandler(directory),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
