package app

import (
	"github.com/KOFI-GYIMAH/github-connector/internal/config"
	"github.com/KOFI-GYIMAH/github-connector/internal/db"
	"github.com/KOFI-GYIMAH/github-connector/internal/github"
	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/internal/service"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

// * NewDispatcher builds the dispatcher every host shares. The audit store is
// * optional: when it cannot be reached the connector keeps serving without it.
// * The returned func releases whatever was opened.
func NewDispatcher(cfg *config.Config) (*service.Dispatcher, func()) {
	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	githubClient := github.NewClient(cfg.GitHubToken)

	var database models.Database
	cleanup := func() {}

	if cfg.AuditDBURL != "" {
		pg, err := db.NewPostgresDB(cfg.AuditDBURL)
		if err != nil {
			logger.Warn("Audit database unavailable, continuing without auditing: %v", err)
		} else if err := pg.Migrate(); err != nil {
			logger.Warn("Audit migrations failed, continuing without auditing: %v", err)
			pg.Close()
		} else {
			logger.Info("Successfully ran audit migrations")
			database = pg
			cleanup = func() {
				if err := pg.Close(); err != nil {
					logger.Warn("%v", err)
				}
			}
		}
	}

	return service.NewDispatcher(githubClient, cfg, database), cleanup
}
