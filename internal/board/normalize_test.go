package board

import (
	"reflect"
	"testing"
	"time"
)

var zurich = time.FixedZone("CEST", 2*60*60)

func rawAt(line, to string, dep time.Time) RawDeparture {
	return RawDeparture{Category: "B", Line: line, To: to, Departure: &dep}
}

func TestNormalize_TramScenario(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, zurich)
	dep := now.Add(5 * time.Minute)

	rows := Normalize([]RawDeparture{
		{Category: "T", Line: "11", To: "Zürich, Auzelg", Departure: &dep},
	}, now, Options{})

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.Line != "11" {
		t.Errorf("Line = %q, want 11", row.Line)
	}
	if row.Destination != "Auzelg" {
		t.Errorf("Destination = %q, want Auzelg", row.Destination)
	}
	if row.Category != CategoryTram {
		t.Errorf("Category = %v, want tram", row.Category)
	}
	if row.Minutes != 5 {
		t.Errorf("Minutes = %d, want 5", row.Minutes)
	}
	if row.Imminent {
		t.Error("Imminent = true for a 5 minute departure")
	}
}

func TestMinutesUntil_ZoneCorrectness(t *testing.T) {
	t.Parallel()

	// The same instants expressed in different zones must yield the
	// same minute count.
	dep := time.Date(2024, 6, 15, 14, 7, 30, 0, zurich)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) // 14:00 CEST

	local := MinutesUntil(dep, now)
	utc := MinutesUntil(dep.UTC(), now.UTC())

	if local != utc {
		t.Errorf("MinutesUntil differs by zone: local %d, utc %d", local, utc)
	}
	if local != 7 {
		t.Errorf("MinutesUntil = %d, want 7", local)
	}
}

func TestMinutesUntil_FloorsNegative(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	// 30 seconds in the past is already minute -1, not 0.
	if got := MinutesUntil(now.Add(-30*time.Second), now); got != -1 {
		t.Errorf("MinutesUntil(-30s) = %d, want -1", got)
	}
	if got := MinutesUntil(now.Add(30*time.Second), now); got != 0 {
		t.Errorf("MinutesUntil(+30s) = %d, want 0", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, zurich)
	raw := []RawDeparture{
		rawAt("31", "Zürich, Hegibachplatz", now.Add(2*time.Minute)),
		rawAt("33", "Bern", now.Add(9*time.Minute)),
		{Category: "T", Line: "4", To: "Zürich, Bahnhofquai"},
	}
	opts := Options{MaxRows: 10, Policy: PolicyNow}

	first := Normalize(raw, now, opts)
	second := Normalize(raw, now, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestNormalize_TruncatesAfterFilteringWithoutReordering(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, zurich)
	raw := []RawDeparture{
		rawAt("1", "A", now.Add(-3*time.Minute)), // dropped under PolicyDrop
		rawAt("2", "B", now.Add(1*time.Minute)),
		rawAt("3", "C", now.Add(2*time.Minute)),
		rawAt("4", "D", now.Add(3*time.Minute)),
	}

	rows := Normalize(raw, now, Options{MaxRows: 2, Policy: PolicyDrop})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// The dropped departed row must not count against MaxRows, and the
	// survivors keep upstream order.
	if rows[0].Line != "2" || rows[1].Line != "3" {
		t.Errorf("rows out of order: got %s, %s", rows[0].Line, rows[1].Line)
	}

	for _, max := range []int{0, 1, 3, 100} {
		got := Normalize(raw, now, Options{MaxRows: max, Policy: PolicyDrop})
		if max > 0 && len(got) > max {
			t.Errorf("MaxRows %d: rows = %d", max, len(got))
		}
	}
}

func TestNormalize_DepartedPolicies(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, zurich)
	raw := []RawDeparture{rawAt("9", "Heuried", now.Add(-2 * time.Minute))}

	tests := []struct {
		name        string
		policy      DepartedPolicy
		wantRows    int
		wantMinutes int
	}{
		{"drop removes the row", PolicyDrop, 0, 0},
		{"now clamps to zero", PolicyNow, 1, 0},
		{"clock keeps the negative count", PolicyClock, 1, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Normalize(raw, now, Options{Policy: tt.policy})
			if len(rows) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(rows), tt.wantRows)
			}
			if tt.wantRows == 0 {
				return
			}
			if rows[0].Minutes != tt.wantMinutes {
				t.Errorf("Minutes = %d, want %d", rows[0].Minutes, tt.wantMinutes)
			}
			if tt.policy == PolicyClock && rows[0].Imminent {
				t.Error("departed row flagged imminent under clock policy")
			}
		})
	}
}

func TestNormalize_UnknownTimeSentinel(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, zurich)
	rows := Normalize([]RawDeparture{
		{Category: "B", Line: "89", To: "Zürich, Sihlcity"},
	}, now, Options{Policy: PolicyDrop})

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (record without time must not be dropped)", len(rows))
	}
	if !rows[0].TimeUnknown {
		t.Error("TimeUnknown = false for a record without departure time")
	}
}

func TestNormalize_SkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 0, 0, 0, zurich)
	raw := []RawDeparture{
		{Category: "B", Line: "72", To: "  "}, // no destination
		rawAt("80", "Oerlikon", now.Add(4*time.Minute)),
	}

	rows := Normalize(raw, now, Options{})
	if len(rows) != 1 || rows[0].Line != "80" {
		t.Fatalf("rows = %+v, want only line 80", rows)
	}
}

func TestStripCityPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Zürich, Bellevue", "Bellevue"},
		{"Zurich HB", "HB"},
		{"Bern", "Bern"},
		{"zürich, Triemli", "Triemli"},
		{"Zürich", "Zürich"},
		{"Zürichbergstrasse", "Zürichbergstrasse"},
		{"Zürich,  Klusplatz", "Klusplatz"},
	}

	for _, tt := range tests {
		if got := StripCityPrefix(tt.in, DefaultCityPrefixes); got != tt.want {
			t.Errorf("StripCityPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want Category
	}{
		{"B", CategoryBus},
		{"NFB", CategoryBus},
		{"T", CategoryTram},
		{"t", CategoryTram},
		{"S", CategoryTrain},
		{"IC", CategoryTrain},
		{"GB", CategoryBus}, // unmapped codes default to bus
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.code); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestSnapshot_PublishAndLatest(t *testing.T) {
	t.Parallel()

	var s Snapshot
	if _, ok := s.Latest(); ok {
		t.Fatal("Latest() ok before first publish")
	}

	s.Publish(Result{Kind: KindEmpty, Station: "Bellevue"})
	got, ok := s.Latest()
	if !ok || got.Station != "Bellevue" || got.Kind != KindEmpty {
		t.Fatalf("Latest() = %+v, %v", got, ok)
	}

	s.Publish(NetworkError("connection refused"))
	got, _ = s.Latest()
	if got.Kind != KindNetworkError || got.Err != "connection refused" {
		t.Fatalf("Latest() after replace = %+v", got)
	}
}
