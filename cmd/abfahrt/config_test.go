package main

import (
	"strings"
	"testing"
	"time"

	"github.com/transitkiosk/abfahrt/internal/board"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Station != board.DefaultStation {
		t.Errorf("station = %q, want %q", cfg.Station, board.DefaultStation)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("refresh-interval = %s, want 30s", cfg.RefreshInterval)
	}
	if cfg.MaxDepartures != 20 {
		t.Errorf("max-departures = %d, want 20", cfg.MaxDepartures)
	}
	if len(cfg.TransportTypes) != 2 || cfg.TransportTypes[0] != "bus" || cfg.TransportTypes[1] != "tram" {
		t.Errorf("transport-types = %v", cfg.TransportTypes)
	}
	if cfg.Departed != "now" {
		t.Errorf("departed = %q, want now", cfg.Departed)
	}
	if cfg.APIEnabled {
		t.Error("api-enabled defaults true, want false")
	}

	if err := cfg.validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ABFAHRT_STATION", "Bellevue")
	t.Setenv("ABFAHRT_REFRESH_INTERVAL", "15s")
	t.Setenv("ABFAHRT_DEPARTED", "clock")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Station != "Bellevue" {
		t.Errorf("station = %q, want Bellevue", cfg.Station)
	}
	if cfg.RefreshInterval != 15*time.Second {
		t.Errorf("refresh-interval = %s, want 15s", cfg.RefreshInterval)
	}
	if cfg.Departed != "clock" {
		t.Errorf("departed = %q, want clock", cfg.Departed)
	}
}

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	if _, err := loadConfig(""); err != nil {
		t.Fatalf("loadConfig without a config file: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := appConfig{
		Station:         "Bellevue",
		RefreshInterval: 30 * time.Second,
		MaxDepartures:   20,
		Departed:        "now",
	}

	tests := []struct {
		name    string
		mutate  func(*appConfig)
		wantErr string
	}{
		{"valid", func(c *appConfig) {}, ""},
		{"empty station", func(c *appConfig) { c.Station = "" }, "station"},
		{"zero interval", func(c *appConfig) { c.RefreshInterval = 0 }, "refresh-interval"},
		{"negative max", func(c *appConfig) { c.MaxDepartures = -1 }, "max-departures"},
		{"bad policy", func(c *appConfig) { c.Departed = "vanish" }, "departed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestTransportConfig(t *testing.T) {
	cfg := appConfig{
		Station:         "Bellevue",
		RefreshInterval: 30 * time.Second,
		MaxDepartures:   8,
		TransportTypes:  []string{"tram"},
		Departed:        "drop",
		CityPrefixes:    []string{"Zürich"},
		BaseURL:         "http://example.test",
	}

	tc := cfg.transportConfig()
	if tc.BaseURL != "http://example.test" || tc.Limit != 8 {
		t.Errorf("transport config = %+v", tc)
	}
	if tc.Normalize.Policy != board.PolicyDrop || tc.Normalize.MaxRows != 8 {
		t.Errorf("normalize options = %+v", tc.Normalize)
	}
}
