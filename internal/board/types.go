// Package board holds the display domain of the departure board: the
// normalized row model, the per-cycle fetch result, and the normalizer
// that turns raw stationboard records into display-ready rows.
package board

import (
	"encoding/json"
	"time"
)

// Category classifies a departure by vehicle type.
type Category int

const (
	CategoryBus Category = iota
	CategoryTram
	CategoryTrain
	CategoryUnknown
)

// String returns the lowercase wire name of the category.
func (c Category) String() string {
	switch c {
	case CategoryBus:
		return "bus"
	case CategoryTram:
		return "tram"
	case CategoryTrain:
		return "train"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the category as its string name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// RawDeparture is one stationboard record as handed to the normalizer.
// The transport client maps the wire JSON onto this shape so the
// normalizer stays independent of the upstream encoding.
type RawDeparture struct {
	Category  string
	Line      string
	To        string
	Departure *time.Time
	Platform  string
}

// Row is one display-ready departure.
type Row struct {
	Line        string    `json:"line"`
	Destination string    `json:"destination"`
	Category    Category  `json:"category"`
	Minutes     int       `json:"minutes"`
	Imminent    bool      `json:"imminent"`
	TimeUnknown bool      `json:"time_unknown,omitempty"`
	Departure   time.Time `json:"departure"`
	Platform    string    `json:"platform,omitempty"`
}

// Kind tags the outcome of one fetch cycle.
type Kind int

const (
	KindOK Kind = iota
	KindEmpty
	KindStationNotFound
	KindNetworkError
)

// String returns the lowercase wire name of the result kind.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindEmpty:
		return "empty"
	case KindStationNotFound:
		return "station_not_found"
	default:
		return "network_error"
	}
}

// MarshalJSON encodes the kind as its string name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Result is the outcome of one fetch cycle. It is produced once per
// cycle, handed to the renderer exactly once, and never mutated after
// construction.
type Result struct {
	Kind      Kind      `json:"kind"`
	Station   string    `json:"station,omitempty"`
	Rows      []Row     `json:"departures,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Err       string    `json:"error,omitempty"`
}

// NetworkError builds the result for a failed fetch.
func NetworkError(msg string) Result {
	return Result{Kind: KindNetworkError, Err: msg}
}
