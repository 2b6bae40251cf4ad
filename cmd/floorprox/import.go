package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"floorprox/internal/common/config"
	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/models"
	"floorprox/internal/scene/parser"
	"floorprox/internal/scene/repository"
)

// ============================================================
// Import
// ============================================================

func runImport(floorID, path, name string) error {
	cfg := config.Load()

	res, err := readResources(path)
	if err != nil {
		return err
	}

	catalog, err := classifier.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	cls, err := classifier.Classify(res, catalog)
	if err != nil {
		return fmt.Errorf("classify %s: %w", path, err)
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	repo := repository.New(db)
	ctx := context.Background()
	if err := repo.Init(ctx, cfg.AccessToken); err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	if name == "" {
		name = floorID
	}
	if err := repo.SaveFloor(ctx, floorID, name, res); err != nil {
		return err
	}

	fmt.Printf("Stored floor %s (%s): %d spaces, %d assets, %d desks\n",
		floorID, name, len(res.Spaces), len(res.Assets), len(cls.Desks))
	return nil
}

// readResources загружает этаж из .svg плана или JSON файла ресурсов.
func readResources(path string) (models.Resources, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Resources{}, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		res, err := parser.ParseSVG(f)
		if err != nil {
			return models.Resources{}, fmt.Errorf("parse svg %s: %w", path, err)
		}
		return res, nil
	}

	var res models.Resources
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return models.Resources{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return res, nil
}
