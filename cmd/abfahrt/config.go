package main

import (
	"fmt"
	"time"

	"github.com/transitkiosk/abfahrt/internal/board"
	"github.com/transitkiosk/abfahrt/internal/transport"
)

const (
	defaultRefreshInterval = board.DefaultRefreshInterval
	defaultMaxDepartures   = board.DefaultMaxDepartures
	defaultAPIAddr         = "127.0.0.1:8090"
)

var defaultTransportTypes = []string{"bus", "tram"}

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Station         string        `mapstructure:"station"`
	RefreshInterval time.Duration `mapstructure:"refresh-interval"`
	MaxDepartures   int           `mapstructure:"max-departures"`
	TransportTypes  []string      `mapstructure:"transport-types"`
	Departed        string        `mapstructure:"departed"`
	CityPrefixes    []string      `mapstructure:"city-prefixes"`
	BaseURL         string        `mapstructure:"base-url"`
	APIEnabled      bool          `mapstructure:"api-enabled"`
	APIAddr         string        `mapstructure:"api-addr"`
	ConfigPath      string        `mapstructure:"-"` // not from config file
}

func (c appConfig) validate() error {
	if c.Station == "" {
		return fmt.Errorf("station must not be empty")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("invalid refresh-interval: %s", c.RefreshInterval)
	}
	if c.MaxDepartures <= 0 {
		return fmt.Errorf("invalid max-departures: %d", c.MaxDepartures)
	}
	if _, err := board.ParseDepartedPolicy(c.Departed); err != nil {
		return err
	}
	return nil
}

// transportConfig translates the CLI configuration into the fetch
// client's shape.
func (c appConfig) transportConfig() transport.Config {
	policy, _ := board.ParseDepartedPolicy(c.Departed)
	return transport.Config{
		BaseURL:        c.BaseURL,
		TransportTypes: c.TransportTypes,
		Limit:          c.MaxDepartures,
		Normalize: board.Options{
			MaxRows:      c.MaxDepartures,
			Policy:       policy,
			CityPrefixes: c.CityPrefixes,
		},
	}
}
