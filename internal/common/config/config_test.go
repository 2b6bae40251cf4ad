package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "SHOW_ICONS", "HIT_RADIUS", "COLOR_SCHEME"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.DBPath != "data/db/floors.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ColorScheme != "default" || cfg.ShowIcons {
		t.Errorf("display = %q/%v, want default/false", cfg.ColorScheme, cfg.ShowIcons)
	}
	if cfg.HitRadius != 0.5 {
		t.Errorf("HitRadius = %v, want 0.5", cfg.HitRadius)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("READ_TIMEOUT", "30")
	t.Setenv("SHOW_ICONS", "true")
	t.Setenv("HIT_RADIUS", "0.75")
	t.Setenv("ACCESS_TOKEN", "secret")

	cfg := Load()
	if cfg.Port != "8080" || cfg.ReadTimeout != 30 {
		t.Errorf("server = %q/%d", cfg.Port, cfg.ReadTimeout)
	}
	if !cfg.ShowIcons || cfg.HitRadius != 0.75 || cfg.AccessToken != "secret" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("WRITE_TIMEOUT", "soon")
	t.Setenv("SHOW_ICONS", "maybe")
	t.Setenv("HIT_RADIUS", "wide")

	cfg := Load()
	if cfg.WriteTimeout != 10 || cfg.ShowIcons || cfg.HitRadius != 0.5 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}
