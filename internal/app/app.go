package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/skyboxlabs/skybox/internal/config"
	"github.com/skyboxlabs/skybox/internal/db"
	"github.com/skyboxlabs/skybox/internal/repository"
	"github.com/skyboxlabs/skybox/internal/service"
	"github.com/skyboxlabs/skybox/internal/storage"
)

// App holds the process-lifetime dependencies. It is constructed once at
// startup and injected into the handlers; nothing reaches for globals.
type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	FileService *service.FileService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	fileRepository := repository.NewFileRepository(database)

	// Storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	fileService := service.NewFileService(fileRepository, blobStorage)

	return &App{
		Cfg:         cfg,
		DB:          database,
		FileService: fileService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
