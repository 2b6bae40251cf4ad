package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"floorprox/internal/common/config"
	"floorprox/internal/common/middleware"
	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/handlers"
	"floorprox/internal/proximity/highlight"
	"floorprox/internal/proximity/report"
	"floorprox/internal/proximity/session"
	"floorprox/internal/scene/loader"
	"floorprox/internal/scene/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Floor API Server
// ============================================================

func runServe(port string) error {
	cfg := config.Load()
	if port != "" {
		cfg.Port = port
	}

	catalog, err := classifier.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	settings, err := displaySettings(cfg.ColorScheme, cfg.ShowIcons)
	if err != nil {
		return err
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.AccessToken); err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	if cfg.AccessToken == "" {
		log.Printf("[SERVE] ACCESS_TOKEN is empty, only tokens already stored can load scenes")
	}

	board := report.NewBoard()
	scenes := loader.New(repo, cfg.HitRadius)
	sessions := session.NewRegistry(loader.SessionFunc(scenes.Load), board, catalog, settings)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "floorprox",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(cfg.Environment))
	app.Use(middleware.CORS())

	// ============================================================
	// Routes
	// ============================================================

	handlers.NewFloorHandler(repo, sessions, board, catalog).Mount(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting floorprox on %s (env: %s, db: %s)", addr, cfg.Environment, cfg.DBPath)

	return app.Listen(addr)
}

func displaySettings(scheme string, icons bool) (highlight.Settings, error) {
	mode, err := highlight.ParseMode(scheme)
	if err != nil {
		return highlight.Settings{}, err
	}
	return highlight.Settings{ColorScheme: mode, ShowIcons: icons}, nil
}
