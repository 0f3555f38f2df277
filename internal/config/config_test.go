package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort != ":8080" {
		t.Fatalf("unexpected port: %q", cfg.ServerPort)
	}
	if cfg.TrainingsURL == "" {
		t.Fatalf("expected default trainings url")
	}
	if cfg.RefreshIntervalMin != 60 {
		t.Fatalf("unexpected refresh interval: %d", cfg.RefreshIntervalMin)
	}
	if cfg.DefaultRadiusKm != 10 {
		t.Fatalf("unexpected default radius: %v", cfg.DefaultRadiusKm)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9999")
	t.Setenv("TRAININGS_URL", "http://localhost:3000/plan.json")

	cfg := Load()
	if cfg.ServerPort != ":9999" {
		t.Fatalf("env override ignored: %q", cfg.ServerPort)
	}
	if cfg.TrainingsURL != "http://localhost:3000/plan.json" {
		t.Fatalf("env override ignored: %q", cfg.TrainingsURL)
	}
}
