package board

import "time"

// Shared defaults used by both the kiosk and finder binaries.
const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultMaxDepartures   = 20
	DefaultStation         = "Mannessplatz"
)

// DefaultCityPrefixes are the leading city tokens stripped from
// destination names on the board.
var DefaultCityPrefixes = []string{"Zürich", "Zurich"}
