package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rsfire/erp/internal/cli"
	"github.com/rsfire/erp/internal/repository"
	"github.com/rsfire/erp/internal/services"
	"github.com/rsfire/erp/pkg/config"
	"github.com/rsfire/erp/pkg/database"
	"github.com/rsfire/erp/pkg/logger"
)

func main() {
	if err := cli.NewRootCmd(loadServices).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadServices(ctx context.Context) (*cli.Services, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	// Command output goes to stdout; keep logs quiet unless asked for.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	if _, err := logger.Init(level, "console"); err != nil {
		return nil, nil, err
	}

	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	release := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		logger.Sync()
	}

	projects := repository.NewProjectRepository(db)
	return &cli.Services{
		Approvals: services.NewApprovalService(projects, repository.NewApprovalRepository(db),
			services.NewEmployeeDirectory(repository.NewEmployeeRepository(db)),
			services.ApprovalOptions{StoreTimeout: cfg.StoreTimeout, EnforceAssignment: cfg.EnforceAssignment}),
		Projects: services.NewProjectService(projects, cfg.ProjectIDSeed),
	}, release, nil
}
