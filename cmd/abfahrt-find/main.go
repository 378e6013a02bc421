// Command abfahrt-find looks up stops by name against the
// transport.opendata.ch locations endpoint and probes which candidates
// actually serve departures, so a new kiosk can be pointed at the right
// station string.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/transitkiosk/abfahrt/internal/board"
	"github.com/transitkiosk/abfahrt/internal/clock"
	"github.com/transitkiosk/abfahrt/internal/transport"
)

const probeLimit = 3

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "base-url", transport.DefaultBaseURL, "transport API base URL")
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <station name>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s Bellevue\n", os.Args[0])
		os.Exit(1)
	}

	if err := run(query, baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(query, baseURL string) error {
	client := transport.NewClient(transport.Config{BaseURL: baseURL}, clock.RealClock{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stations, err := client.Locations(ctx, query)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", query, err)
	}
	if len(stations) == 0 {
		fmt.Printf("No stops matching %q.\n", query)
		return nil
	}

	// Probe the top candidates concurrently: a location hit does not
	// guarantee the stationboard endpoint knows the stop.
	probes := min(len(stations), probeLimit)
	results := make([]board.Result, probes)
	g, gctx := errgroup.WithContext(ctx)
	for i := range probes {
		g.Go(func() error {
			results[i] = client.Stationboard(gctx, stations[i].Name)
			return nil
		})
	}
	g.Wait()

	fmt.Printf("Stops matching %q:\n\n", query)
	for i, st := range stations {
		fmt.Printf("%2d. %s\n", i+1, st.Name)
		if st.ID != "" {
			fmt.Printf("    ID: %s\n", st.ID)
		}
		if st.Icon != "" {
			fmt.Printf("    Type: %s\n", st.Icon)
		}
		if c := st.Coordinate; c != nil && c.X != nil && c.Y != nil {
			fmt.Printf("    Coordinates: %.6f, %.6f\n", *c.X, *c.Y)
		}
		if i < probes {
			fmt.Printf("    Departures: %s\n", probeSummary(results[i]))
		}
		fmt.Println()
	}

	if best := firstServed(stations, results); best != "" {
		fmt.Println("Config snippet for ~/.config/abfahrt/config.yml:")
		fmt.Printf("  station: %q\n", best)
	}
	return nil
}

func probeSummary(res board.Result) string {
	switch res.Kind {
	case board.KindOK:
		return fmt.Sprintf("yes (%d scheduled)", len(res.Rows))
	case board.KindEmpty:
		return "none scheduled right now"
	case board.KindStationNotFound:
		return "stop unknown to the stationboard"
	default:
		return "probe failed: " + res.Err
	}
}

func firstServed(stations []transport.Station, results []board.Result) string {
	for i, res := range results {
		if res.Kind == board.KindOK || res.Kind == board.KindEmpty {
			return stations[i].Name
		}
	}
	return ""
}
