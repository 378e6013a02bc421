package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/transitkiosk/abfahrt/internal/board"
	"github.com/transitkiosk/abfahrt/internal/clock"
	"github.com/transitkiosk/abfahrt/internal/httpserver"
	"github.com/transitkiosk/abfahrt/internal/transport"
	"github.com/transitkiosk/abfahrt/internal/tui"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var station string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/abfahrt/config.yml)")
	flag.StringVar(&station, "station", "", "stop to display (overrides config)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Abfahrt - Live Departure Board\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if station != "" {
		cfg.Station = station
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg appConfig) error {
	clk := clock.RealClock{}
	client := transport.NewClient(cfg.transportConfig(), clk)
	snapshot := &board.Snapshot{}

	model := tui.New(client, cfg.Station, cfg.RefreshInterval, clk, snapshot)

	var api *httpserver.Server
	if cfg.APIEnabled {
		api = httpserver.NewServer(cfg.APIAddr, cfg.Station, snapshot)
		if err := api.Start(); err != nil {
			// The board is the product; a busy API port should not
			// keep it off the screen.
			log.Printf("board API unavailable on %s: %v", cfg.APIAddr, err)
			api = nil
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	if api != nil {
		if err := api.Stop(); err != nil {
			log.Printf("stopping board API: %v", err)
		}
	}

	return runErr
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("ABFAHRT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("station", board.DefaultStation)
	v.SetDefault("refresh-interval", defaultRefreshInterval)
	v.SetDefault("max-departures", defaultMaxDepartures)
	v.SetDefault("transport-types", defaultTransportTypes)
	v.SetDefault("departed", string(board.PolicyNow))
	v.SetDefault("city-prefixes", board.DefaultCityPrefixes)
	v.SetDefault("base-url", transport.DefaultBaseURL)
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-addr", defaultAPIAddr)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultConfigPath := filepath.Join(home, ".config", "abfahrt", "config.yml")
		v.SetConfigFile(defaultConfigPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	return cfg, nil
}
