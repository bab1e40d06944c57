package cmd

import (
	adapterstorage "tempo/internal/adapters/storage"
	"tempo/internal/ports"
	"tempo/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	ActivityService *services.ActivityService
	Engine          *services.Engine
	HabitService    *services.HabitService
	Ledger          ports.EntryLedger
	ReportService   *services.ReportService

	// Internal - for cleanup only
	repo ports.Repository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(dbPath string) (*Container, error) {
	repo, err := adapterstorage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}

	clock := services.NewSystemClock()
	activityService := services.NewActivityService(repo, repo)
	habitService := services.NewHabitService(repo, clock)
	reportService := services.NewReportService(repo, repo)
	engine := services.NewEngine(repo, repo, repo, habitService, clock)

	return &Container{
		ActivityService: activityService,
		Engine:          engine,
		HabitService:    habitService,
		Ledger:          repo,
		ReportService:   reportService,
		repo:            repo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.repo != nil {
		return c.repo.Close()
	}
	return nil
}
