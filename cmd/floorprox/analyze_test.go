package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"floorprox/internal/proximity/models"
)

func TestParseClicks(t *testing.T) {
	got, err := parseClicks([]string{"1,2", " 3.5 , -4 "})
	if err != nil {
		t.Fatalf("parseClicks: %v", err)
	}
	want := []models.Point2D{{X: 1, Y: 2}, {X: 3.5, Y: -4}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("click %d = %v, want %v", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"1", "1,2,3", "a,1", "1,b"} {
		if _, err := parseClicks([]string{bad}); err == nil {
			t.Errorf("parseClicks(%q) expected error", bad)
		}
	}
}

func TestRenderDistances(t *testing.T) {
	v := 8.09
	out := renderDistances("Averages", models.Distances{"meetingRoom": &v, "aed": nil})

	if !strings.Contains(out, "8.09") || !strings.Contains(out, "null") {
		t.Errorf("output missing values:\n%s", out)
	}
	if strings.Index(out, "aed") > strings.Index(out, "meetingRoom") {
		t.Errorf("rows not sorted by name:\n%s", out)
	}
}

func TestDisplaySettings(t *testing.T) {
	if _, err := displaySettings("sepia", false); err == nil {
		t.Error("expected error for unknown scheme")
	}
	s, err := displaySettings("monochrome", true)
	if err != nil || s.ColorScheme != "monochrome" || !s.ShowIcons {
		t.Errorf("settings = %+v, %v", s, err)
	}
}

func TestRunAnalyze(t *testing.T) {
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("COLOR_SCHEME", "")

	res := models.Resources{
		Spaces: []*models.Entity{
			{ID: "wc", Kind: models.KindSpace, Usage: "restroom", Center: &models.Point2D{X: 4, Y: 1}},
		},
		Assets: []*models.Entity{
			{ID: "d1", Kind: models.KindAsset, SubCategories: []string{"desk"}, Position: &models.Vec3{X: 1, Z: 1}},
		},
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "level1.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	opts := analyzeOptions{scheme: "monochrome", clicks: []string{"1,1", "1,1", "9,9"}}
	if err := runAnalyze(path, opts); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}

	if err := runAnalyze(path, analyzeOptions{clicks: []string{"nope"}}); err == nil {
		t.Error("expected error for malformed click")
	}
}
