package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/transitkiosk/abfahrt/internal/board"
	"github.com/transitkiosk/abfahrt/internal/clock"
)

const (
	// DefaultBaseURL is the public transport.opendata.ch endpoint.
	DefaultBaseURL = "http://transport.opendata.ch"

	// fetchTimeout bounds one fetch cycle; exceeding it is a network
	// error like any other and is retried on the next cycle.
	fetchTimeout = 10 * time.Second

	userAgent = "abfahrt departure board (https://github.com/transitkiosk/abfahrt)"
)

// Config shapes a Client.
type Config struct {
	// BaseURL overrides the API endpoint; empty means DefaultBaseURL.
	BaseURL string
	// TransportTypes restricts the stationboard to the given vehicle
	// types; empty means all.
	TransportTypes []string
	// Limit is the result count requested per fetch.
	Limit int
	// Normalize is handed to the normalizer along with each batch.
	Normalize board.Options
}

// Client fetches stationboard and locations data. All stationboard
// failures are converted to board.Result variants; no error or panic
// crosses this boundary back into the render loop.
type Client struct {
	baseURL    string
	types      []string
	limit      int
	normalize  board.Options
	httpClient *http.Client
	clk        clock.Clock
}

// NewClient creates a Client with the fixed fetch timeout.
func NewClient(cfg Config, clk clock.Clock) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = board.DefaultMaxDepartures
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Client{
		baseURL:   baseURL,
		types:     cfg.TransportTypes,
		limit:     limit,
		normalize: cfg.Normalize,
		httpClient: &http.Client{
			Timeout:   fetchTimeout,
			Transport: userAgentTransport{},
		},
		clk: clk,
	}
}

// Stationboard issues one GET for the station's departure board and
// returns the outcome of the whole cycle, normalized rows included.
func (c *Client) Stationboard(ctx context.Context, station string) board.Result {
	start := time.Now()
	result := c.stationboard(ctx, station)
	fetchDuration.Observe(time.Since(start).Seconds())
	fetchCount.WithLabelValues(result.Kind.String()).Inc()
	return result
}

func (c *Client) stationboard(ctx context.Context, station string) board.Result {
	q := url.Values{}
	q.Set("station", station)
	q.Set("limit", strconv.Itoa(c.limit))
	// The API expects one transportations[] entry per type, never a
	// comma-joined list.
	for _, t := range c.types {
		q.Add("transportations[]", t)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/stationboard?"+q.Encode(), nil)
	if err != nil {
		return board.NetworkError(err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return board.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return board.NetworkError(fmt.Sprintf("stationboard request failed: HTTP %d", resp.StatusCode))
	}

	var body stationboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return board.NetworkError("decoding stationboard response: " + err.Error())
	}

	if body.Station == nil {
		return board.Result{Kind: board.KindStationNotFound, Station: station, FetchedAt: c.clk.Now()}
	}
	if len(body.Stationboard) == 0 {
		return board.Result{Kind: board.KindEmpty, Station: body.Station.Name, FetchedAt: c.clk.Now()}
	}

	now := c.clk.Now()
	rows := board.Normalize(toRaw(body.Stationboard), now, c.normalize)
	return board.Result{
		Kind:      board.KindOK,
		Station:   body.Station.Name,
		Rows:      rows,
		FetchedAt: now,
	}
}

// toRaw maps wire records onto the normalizer's input shape. Local
// transit lines carry their number in "number"; train products only
// fill "name" ("S 6", "IC 5").
func toRaw(entries []Departure) []board.RawDeparture {
	raw := make([]board.RawDeparture, 0, len(entries))
	for _, e := range entries {
		line := e.Number
		if strings.TrimSpace(line) == "" {
			line = e.Name
		}
		rec := board.RawDeparture{
			Category: e.Category,
			Line:     line,
			To:       e.To,
			Platform: e.Stop.Platform,
		}
		if e.Stop.Departure != nil && !e.Stop.Departure.IsZero() {
			t := e.Stop.Departure.Time
			rec.Departure = &t
		}
		raw = append(raw, rec)
	}
	return raw
}

// Locations searches for stations matching the query. Unlike the
// stationboard path this is an interactive call, so it returns a plain
// error for the finder CLI to report.
func (c *Client) Locations(ctx context.Context, query string) ([]Station, error) {
	q := url.Values{}
	q.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/locations?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		locationsCount.WithLabelValues("error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		locationsCount.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("locations request failed: HTTP %d", resp.StatusCode)
	}

	var body locationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		locationsCount.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decoding locations response: %w", err)
	}

	locationsCount.WithLabelValues("ok").Inc()
	return body.Stations, nil
}

// userAgentTransport stamps every request with the client's User-Agent.
type userAgentTransport struct{}

func (userAgentTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	request.Header.Set("User-Agent", userAgent)
	return http.DefaultTransport.RoundTrip(request)
}
