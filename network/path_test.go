package network

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFastest_linear(t *testing.T) {
	top := linearABC(t)

	got := top.Fastest("A", "C")
	want := TravelRoute{
		StartStationID:  "A",
		EndStationID:    "C",
		TotalTravelTime: 5,
		Steps: []Step{
			{StartStationID: "A", EndStationID: "B", LineID: "L", RouteID: "R", TravelTime: 2},
			{StartStationID: "B", EndStationID: "C", LineID: "L", RouteID: "R", TravelTime: 3},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fastest(A,C): mismatch (-want +got):\n%s", diff)
	}
}

func TestFastest_sameStation(t *testing.T) {
	top := linearABC(t)

	got := top.Fastest("A", "A")
	want := TravelRoute{
		StartStationID:  "A",
		EndStationID:    "A",
		TotalTravelTime: 0,
		Steps:           []Step{{StartStationID: "A", EndStationID: "A", TravelTime: 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fastest(A,A): mismatch (-want +got):\n%s", diff)
	}
}

func TestFastest_unreachable(t *testing.T) {
	top := NewTopology()
	top.AddStation(Station{ID: "A"})
	top.AddStation(Station{ID: "B"})

	got := top.Fastest("A", "B")
	want := TravelRoute{StartStationID: "A", EndStationID: "B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fastest(A,B) unreachable: mismatch (-want +got):\n%s", diff)
	}
}

// TestFastest_parallelRoutesNoPenaltyAtOrigin builds two parallel routes
// between A and B: R1 (A-B direct, cost 10, line L1) and R2 (A-X-B via a
// single route, cost 2+2, line L2). Since R2's own two edges belong to
// the same route, no route-change penalty applies and the fastest path
// costs 4, not 9.
func TestFastest_parallelRoutesNoPenaltyAtOrigin(t *testing.T) {
	top := NewTopology()
	for _, id := range []StationID{"A", "B", "X"} {
		top.AddStation(Station{ID: id})
	}
	if err := top.AddLine(Line{
		ID: "L1",
		Routes: []Route{
			{ID: "R1", LineID: "L1", StartStationID: "A", EndStationID: "B", Stops: []StationID{"A", "B"}},
		},
	}); err != nil {
		t.Fatalf("AddLine(L1): %v", err)
	}
	if err := top.AddLine(Line{
		ID: "L2",
		Routes: []Route{
			{ID: "R2", LineID: "L2", StartStationID: "A", EndStationID: "B", Stops: []StationID{"A", "X", "B"}},
		},
	}); err != nil {
		t.Fatalf("AddLine(L2): %v", err)
	}
	top.SetTravelTime("A", "B", 10)
	top.SetTravelTime("A", "X", 2)
	top.SetTravelTime("X", "B", 2)

	got := top.Fastest("A", "B")
	if got.TotalTravelTime != 4 {
		t.Errorf("Fastest(A,B): want total 4, got %d (%s)", got.TotalTravelTime, got)
	}
}

func TestFastest_routeChangePenalty(t *testing.T) {
	top := NewTopology()
	for _, id := range []StationID{"A", "B", "C"} {
		top.AddStation(Station{ID: id})
	}
	if err := top.AddLine(Line{
		ID: "L1",
		Routes: []Route{
			{ID: "R1", LineID: "L1", StartStationID: "A", EndStationID: "B", Stops: []StationID{"A", "B"}},
		},
	}); err != nil {
		t.Fatalf("AddLine(L1): %v", err)
	}
	if err := top.AddLine(Line{
		ID: "L2",
		Routes: []Route{
			{ID: "R2", LineID: "L2", StartStationID: "B", EndStationID: "C", Stops: []StationID{"B", "C"}},
		},
	}); err != nil {
		t.Fatalf("AddLine(L2): %v", err)
	}
	top.SetTravelTime("A", "B", 2)
	top.SetTravelTime("B", "C", 3)

	got := top.Fastest("A", "C")
	want := 2 + 3 + RouteChangePenalty
	if got.TotalTravelTime != want {
		t.Errorf("Fastest(A,C) with route change: want %d, got %d", want, got.TotalTravelTime)
	}
}

// crowdedHubNetwork builds A-H-C (fast, crowded hub H) and A-D-C
// (slower, uncrowded) on two separate lines/routes.
func crowdedHubNetwork(t *testing.T) *Topology {
	t.Helper()
	top := NewTopology()
	for _, id := range []StationID{"A", "H", "C", "D"} {
		top.AddStation(Station{ID: id})
	}
	if err := top.AddLine(Line{
		ID: "L1",
		Routes: []Route{
			{ID: "R1", LineID: "L1", StartStationID: "A", EndStationID: "C", Stops: []StationID{"A", "H", "C"}},
		},
	}); err != nil {
		t.Fatalf("AddLine(L1): %v", err)
	}
	if err := top.AddLine(Line{
		ID: "L2",
		Routes: []Route{
			{ID: "R2", LineID: "L2", StartStationID: "A", EndStationID: "C", Stops: []StationID{"A", "D", "C"}},
		},
	}); err != nil {
		t.Fatalf("AddLine(L2): %v", err)
	}
	top.SetTravelTime("A", "H", 2)
	top.SetTravelTime("H", "C", 2)
	top.SetTravelTime("A", "D", 3)
	top.SetTravelTime("D", "C", 3)

	for i := 0; i < 100; i++ {
		if err := top.RecordEvent(PassengerEvent{StationID: "H", Kind: EventIn}); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}
	return top
}

func TestQuiet_choosesUncrowdedAlternative(t *testing.T) {
	top := crowdedHubNetwork(t)

	fastest := top.Fastest("A", "C")
	if fastest.TotalTravelTime != 4 {
		t.Fatalf("sanity: fastest total = %d, want 4", fastest.TotalTravelTime)
	}

	got := top.Quiet("A", "C", 0.5, 0.1, 100)
	if got.TotalTravelTime != 6 {
		t.Errorf("Quiet(A,C): want total 6 (via D), got %d (%s)", got.TotalTravelTime, got)
	}
	for _, s := range got.Steps {
		if s.EndStationID == "H" || s.StartStationID == "H" {
			t.Errorf("Quiet(A,C) should avoid crowded hub H, got steps %+v", got.Steps)
		}
	}
}

func TestQuiet_zeroSlowdownEqualsFastest(t *testing.T) {
	top := crowdedHubNetwork(t)

	fastest := top.Fastest("A", "C")
	got := top.Quiet("A", "C", 0, 0.1, 100)
	if diff := cmp.Diff(fastest, got); diff != "" {
		t.Errorf("Quiet(0 slowdown): mismatch (-fastest +quiet):\n%s", diff)
	}
}

func TestQuiet_sameStation(t *testing.T) {
	top := crowdedHubNetwork(t)
	got := top.Quiet("A", "A", 0.5, 0.5, 10)
	want := top.Fastest("A", "A")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Quiet(A,A): mismatch (-want +got):\n%s", diff)
	}
}

func TestQuiet_noQualifyingAlternativeReturnsFastest(t *testing.T) {
	top := linearABC(t)
	// Single route: no alternative path exists at all.
	got := top.Quiet("A", "C", 1.0, 0.01, 10)
	want := top.Fastest("A", "C")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Quiet with no alternative: mismatch (-want +got):\n%s", diff)
	}
}
