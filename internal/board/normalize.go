package board

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DepartedPolicy controls how departures whose time has already passed
// are shown. The upstream feed keeps entries on the board for a short
// while after departure, so the choice is visible on every cycle.
type DepartedPolicy string

const (
	// PolicyDrop removes rows with a strictly negative minute count.
	PolicyDrop DepartedPolicy = "drop"
	// PolicyNow clamps negative minute counts to 0 ("Now").
	PolicyNow DepartedPolicy = "now"
	// PolicyClock keeps departed rows; the renderer shows their clock
	// time instead of a minute count.
	PolicyClock DepartedPolicy = "clock"
)

// ParseDepartedPolicy validates a policy name from configuration.
func ParseDepartedPolicy(s string) (DepartedPolicy, error) {
	switch DepartedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyDrop:
		return PolicyDrop, nil
	case PolicyNow, "":
		return PolicyNow, nil
	case PolicyClock:
		return PolicyClock, nil
	}
	return "", fmt.Errorf("unknown departed policy %q (want drop, now or clock)", s)
}

// Options controls normalization.
type Options struct {
	MaxRows      int
	Policy       DepartedPolicy
	CityPrefixes []string
}

// Normalize maps raw stationboard records to display rows: it computes
// minutes until departure relative to now, applies the departed policy,
// cleans destination names and classifies categories. Upstream order is
// preserved; the feed is already sorted by departure time and re-sorting
// could disagree with upstream tie-breaking. Truncation to MaxRows
// happens only after policy filtering so dropped rows do not shrink the
// visible window.
func Normalize(raw []RawDeparture, now time.Time, opts Options) []Row {
	prefixes := opts.CityPrefixes
	if prefixes == nil {
		prefixes = DefaultCityPrefixes
	}

	rows := make([]Row, 0, len(raw))
	for _, rec := range raw {
		if strings.TrimSpace(rec.To) == "" {
			// Malformed record: skip the entry, keep the cycle.
			continue
		}

		row := Row{
			Line:        strings.TrimSpace(rec.Line),
			Destination: StripCityPrefix(rec.To, prefixes),
			Category:    Classify(rec.Category),
			Platform:    strings.TrimSpace(rec.Platform),
		}

		if rec.Departure == nil {
			row.TimeUnknown = true
			rows = append(rows, row)
			continue
		}

		row.Departure = *rec.Departure
		mins := MinutesUntil(*rec.Departure, now)
		if mins < 0 {
			switch opts.Policy {
			case PolicyDrop:
				continue
			case PolicyClock:
				// keep the negative count; the renderer falls back
				// to the clock time and never prints it
			default:
				mins = 0
			}
		}
		row.Minutes = mins
		row.Imminent = mins == 0
		rows = append(rows, row)
	}

	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}
	return rows
}

// MinutesUntil returns floor((departure - now) / 1 minute). Both
// operands are absolute instants, so the departure's own zone offset is
// honored regardless of the zone now is expressed in.
func MinutesUntil(departure, now time.Time) int {
	return int(math.Floor(departure.Sub(now).Minutes()))
}

// StripCityPrefix removes one leading city token from a destination
// name, matching "<prefix>," or "<prefix> " case-insensitively. A name
// that is only the prefix, or has no prefix, is returned unchanged.
func StripCityPrefix(dest string, prefixes []string) string {
	dest = strings.TrimSpace(dest)
	for _, prefix := range prefixes {
		if len(dest) <= len(prefix) || !strings.EqualFold(dest[:len(prefix)], prefix) {
			continue
		}
		rest := dest[len(prefix):]
		if rest[0] != ',' && rest[0] != ' ' {
			continue
		}
		if trimmed := strings.TrimLeft(rest[1:], " "); trimmed != "" {
			return trimmed
		}
	}
	return dest
}

// categoryByCode maps upstream category codes onto board categories.
// The stationboard feed uses short codes for local transit and train
// product names for rail.
var categoryByCode = map[string]Category{
	"B":    CategoryBus,
	"NFB":  CategoryBus,
	"BUS":  CategoryBus,
	"T":    CategoryTram,
	"NFT":  CategoryTram,
	"TRM":  CategoryTram,
	"TRAM": CategoryTram,
	"S":    CategoryTrain,
	"SN":   CategoryTrain,
	"R":    CategoryTrain,
	"RE":   CategoryTrain,
	"IR":   CategoryTrain,
	"IC":   CategoryTrain,
	"ICE":  CategoryTrain,
	"EC":   CategoryTrain,
	"EXT":  CategoryTrain,
}

// Classify maps an upstream category code to a board category. Codes
// missing from the table default to Bus; only an absent code is Unknown.
func Classify(code string) Category {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return CategoryUnknown
	}
	if c, ok := categoryByCode[code]; ok {
		return c
	}
	return CategoryBus
}
