package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"floorprox/internal/common/config"
	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/models"
	"floorprox/internal/proximity/report"
	"floorprox/internal/proximity/session"
	"floorprox/internal/scene/loader"
)

// ============================================================
// Analyze
// ============================================================

type analyzeOptions struct {
	scheme string
	icons  bool
	clicks []string
}

// cliToken нужен только для предусловия загрузки, статический загрузчик принимает любой.
const cliToken = "cli"

func runAnalyze(path string, opts analyzeOptions) error {
	cfg := config.Load()

	res, err := readResources(path)
	if err != nil {
		return err
	}
	catalog, err := classifier.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	scheme := cfg.ColorScheme
	if opts.scheme != "" {
		scheme = opts.scheme
	}
	settings, err := displaySettings(scheme, opts.icons || cfg.ShowIcons)
	if err != nil {
		return err
	}
	clicks, err := parseClicks(opts.clicks)
	if err != nil {
		return err
	}

	floorID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	static := loader.Static{FloorID: floorID, Resources: res, HitRadius: cfg.HitRadius}
	board := report.NewBoard()
	s := session.New(loader.SessionFunc(static.Load), board, catalog, settings)

	if _, err := s.Load(context.Background(), floorID, cliToken); err != nil {
		return err
	}

	entry, _ := board.Latest(floorID)
	fmt.Println(renderDistances(fmt.Sprintf("Average desk distances: %s", floorID), entry.AvgDistances))

	if len(clicks) == 0 {
		return nil
	}
	scene, err := s.Scene()
	if err != nil {
		return err
	}
	cl, ok := scene.(interface{ Click(models.Point2D) bool })
	if !ok {
		return fmt.Errorf("scene of %s does not accept clicks", floorID)
	}

	for _, p := range clicks {
		before := entry.NearestUpdates
		cl.Click(p)
		entry, _ = board.Latest(floorID)

		fmt.Println()
		fmt.Println(renderClick(p, s.Snapshot(), entry, entry.NearestUpdates > before))
	}
	return nil
}

// parseClicks разбирает пары "x,y".
func parseClicks(raw []string) ([]models.Point2D, error) {
	out := make([]models.Point2D, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("click %q: want x,y", r)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("click %q: %w", r, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("click %q: %w", r, err)
		}
		out = append(out, models.Point2D{X: x, Y: y})
	}
	return out, nil
}
