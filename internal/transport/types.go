// Package transport is the client for the transport.opendata.ch API:
// the stationboard endpoint the board polls, and the locations endpoint
// the station finder searches.
package transport

import (
	"bytes"
	"fmt"
	"time"
)

// Timestamp wraps time.Time to parse the API's departure encoding,
// which is ISO-8601 with a numeric zone offset and no colon
// ("2024-06-15T14:05:00+0200"). RFC 3339 is accepted too.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05Z0700",
	time.RFC3339,
}

// UnmarshalJSON parses the timestamp, treating null as absent.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	s := string(data)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized departure timestamp %q", s)
}

// Station identifies a stop as returned by both endpoints.
type Station struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Icon       string      `json:"icon"`
	Coordinate *Coordinate `json:"coordinate"`
}

// Coordinate is a WGS84 position; X is latitude, Y longitude in this API.
type Coordinate struct {
	Type string   `json:"type"`
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
}

// Departure is one raw stationboard entry.
type Departure struct {
	Category string `json:"category"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	To       string `json:"to"`
	Stop     Stop   `json:"stop"`
}

// Stop carries the per-stop details of a departure.
type Stop struct {
	Departure *Timestamp `json:"departure"`
	Platform  string     `json:"platform"`
}

// stationboardResponse is the body of /v1/stationboard. A null station
// means the lookup failed; an empty stationboard means no departures.
type stationboardResponse struct {
	Station      *Station    `json:"station"`
	Stationboard []Departure `json:"stationboard"`
}

// locationsResponse is the body of /v1/locations.
type locationsResponse struct {
	Stations []Station `json:"stations"`
}
