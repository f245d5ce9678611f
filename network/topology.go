package network

import "fmt"

// stationNode is the internal, index-based representation of a Station.
// outgoing holds one edge index per route departing this station (the
// Edge Index of §4.2); terminalRoutes holds the route indices for which
// this station is the terminal stop, since a terminal stop has no
// outgoing edge for its route (I5) but must still be reported by
// RoutesServing.
type stationNode struct {
	id             StationID
	name           string
	passengers     int64
	outgoing       []int
	terminalRoutes []int
}

// routeNode is the internal representation of a Route. stops holds
// station arena indices in traversal order.
type routeNode struct {
	id      RouteID
	lineIdx int
	stops   []int
}

// lineNode is the internal representation of a Line.
type lineNode struct {
	id     LineID
	name   string
	routes map[RouteID]int
}

// edge is a directed (station -> next_stop) hop on a specific route. It
// holds non-owning references to its route and next station, expressed
// as arena indices rather than pointers: the graph is acyclic in
// ownership (Topology -> lines -> routes -> stops/edges) and cyclic only
// in reference (edge -> station -> edge), so an index-based arena avoids
// reference cycles entirely.
type edge struct {
	routeIdx   int
	next       int
	travelTime int
}

// Topology owns every Station, Line, Route and Edge in the network. It
// enforces the well-formedness invariants of §3 and services the lookups
// of §4.1. It is not safe for concurrent use; Server wraps a Topology
// with the locking policy of §5 for callers that need it.
type Topology struct {
	stations     []stationNode
	stationIndex map[StationID]int

	lines     []lineNode
	lineIndex map[LineID]int

	routes   []routeNode
	routeIdx map[RouteID]int

	edges []edge
}

// NewTopology returns an empty Topology.
func NewTopology() *Topology {
	return &Topology{
		stationIndex: make(map[StationID]int),
		lineIndex:    make(map[LineID]int),
		routeIdx:     make(map[RouteID]int),
	}
}

// AddStation inserts a station if its ID is not already in use. The
// initial passenger count is 0.
func (t *Topology) AddStation(s Station) error {
	if _, ok := t.stationIndex[s.ID]; ok {
		return fmt.Errorf("station %q: %w", s.ID, ErrAlreadyExists)
	}
	t.stationIndex[s.ID] = len(t.stations)
	t.stations = append(t.stations, stationNode{id: s.ID, name: s.Name})
	return nil
}

// AddLine validates every route of the line before installing anything.
// If any route fails validation, no partial state is visible: edges are
// only appended, and the line is only registered, once every route has
// been checked.
func (t *Topology) AddLine(l Line) error {
	if _, ok := t.lineIndex[l.ID]; ok {
		return fmt.Errorf("line %q: %w", l.ID, ErrAlreadyExists)
	}

	type validatedRoute struct {
		route     Route
		stopIdxs  []int
	}
	validated := make([]validatedRoute, 0, len(l.Routes))
	seenIDs := make(map[RouteID]bool, len(l.Routes))

	for _, r := range l.Routes {
		if r.LineID != l.ID {
			return fmt.Errorf("route %q: line id %q does not match owning line %q: %w", r.ID, r.LineID, l.ID, ErrInvalidRoute)
		}
		if _, ok := t.routeIdx[r.ID]; ok {
			return fmt.Errorf("route %q: %w", r.ID, ErrDuplicateRouteID)
		}
		if seenIDs[r.ID] {
			return fmt.Errorf("route %q: %w", r.ID, ErrDuplicateRouteID)
		}
		seenIDs[r.ID] = true

		if len(r.Stops) < 2 {
			return fmt.Errorf("route %q: needs at least 2 stops: %w", r.ID, ErrInvalidRoute)
		}
		if r.Stops[0] != r.StartStationID || r.Stops[len(r.Stops)-1] != r.EndStationID {
			return fmt.Errorf("route %q: start/end station mismatch: %w", r.ID, ErrInvalidRoute)
		}

		seenStops := make(map[StationID]bool, len(r.Stops))
		stopIdxs := make([]int, len(r.Stops))
		for i, sid := range r.Stops {
			if seenStops[sid] {
				return fmt.Errorf("route %q: repeated stop %q: %w", r.ID, sid, ErrInvalidRoute)
			}
			seenStops[sid] = true

			idx, ok := t.stationIndex[sid]
			if !ok {
				return fmt.Errorf("route %q: stop %q: %w", r.ID, sid, ErrUnknownStopReference)
			}
			stopIdxs[i] = idx
		}

		validated = append(validated, validatedRoute{route: r, stopIdxs: stopIdxs})
	}

	// All routes are well formed: install the line, its routes and their
	// edges. Nothing above this point has mutated the topology.
	lineIdx := len(t.lines)
	routesByID := make(map[RouteID]int, len(validated))
	t.lineIndex[l.ID] = lineIdx
	t.lines = append(t.lines, lineNode{id: l.ID, name: l.Name, routes: routesByID})

	for _, v := range validated {
		routeArenaIdx := len(t.routes)
		t.routes = append(t.routes, routeNode{
			id:      v.route.ID,
			lineIdx: lineIdx,
			stops:   v.stopIdxs,
		})
		t.routeIdx[v.route.ID] = routeArenaIdx
		routesByID[v.route.ID] = routeArenaIdx

		last := len(v.stopIdxs) - 1
		for i, stationArenaIdx := range v.stopIdxs {
			if i == last {
				// Terminal stop: no outgoing edge for this route (I5).
				t.stations[stationArenaIdx].terminalRoutes = append(
					t.stations[stationArenaIdx].terminalRoutes, routeArenaIdx)
				continue
			}
			edgeIdx := len(t.edges)
			t.edges = append(t.edges, edge{
				routeIdx: routeArenaIdx,
				next:     v.stopIdxs[i+1],
			})
			t.stations[stationArenaIdx].outgoing = append(
				t.stations[stationArenaIdx].outgoing, edgeIdx)
		}
	}

	return nil
}

// SetTravelTime updates every directed edge between A and B, in either
// direction, to t. Travel times are symmetric (I6): both directions are
// always updated together. At least one edge between A and B must
// already exist.
func (t *Topology) SetTravelTime(a, b StationID, travelTime int) error {
	ai, ok := t.stationIndex[a]
	if !ok {
		return fmt.Errorf("station %q: %w", a, ErrUnknownStation)
	}
	bi, ok := t.stationIndex[b]
	if !ok {
		return fmt.Errorf("station %q: %w", b, ErrUnknownStation)
	}

	updated := false
	for _, ei := range t.stations[ai].outgoing {
		if t.edges[ei].next == bi {
			t.edges[ei].travelTime = travelTime
			updated = true
		}
	}
	for _, ei := range t.stations[bi].outgoing {
		if t.edges[ei].next == ai {
			t.edges[ei].travelTime = travelTime
			updated = true
		}
	}
	if !updated {
		return fmt.Errorf("%q, %q: %w", a, b, ErrNotAdjacent)
	}
	return nil
}

// GetTravelTime returns the shared adjacent travel time between A and B,
// or 0 if A == B or the stations are not adjacent.
func (t *Topology) GetTravelTime(a, b StationID) int {
	if a == b {
		return 0
	}
	ai, ok := t.stationIndex[a]
	if !ok {
		return 0
	}
	bi, ok := t.stationIndex[b]
	if !ok {
		return 0
	}
	for _, ei := range t.stations[ai].outgoing {
		if t.edges[ei].next == bi {
			return t.edges[ei].travelTime
		}
	}
	for _, ei := range t.stations[bi].outgoing {
		if t.edges[ei].next == ai {
			return t.edges[ei].travelTime
		}
	}
	return 0
}

// GetTravelTimeOnRoute walks the given (line, route) from A to B,
// accumulating per-hop travel times. It returns 0 if A is not before B on
// that route, or if either station is not on it.
func (t *Topology) GetTravelTimeOnRoute(line LineID, route RouteID, a, b StationID) int {
	ln, ok := t.lineIndex[line]
	if !ok {
		return 0
	}
	ri, ok := t.lines[ln].routes[route]
	if !ok {
		return 0
	}
	r := t.routes[ri]

	ai, ok := t.stationIndex[a]
	if !ok {
		return 0
	}
	bi, ok := t.stationIndex[b]
	if !ok {
		return 0
	}

	posA, posB := -1, -1
	for i, sIdx := range r.stops {
		if sIdx == ai && posA == -1 {
			posA = i
		}
		if sIdx == bi {
			posB = i
		}
	}
	if posA == -1 || posB == -1 || posA >= posB {
		return 0
	}

	total := 0
	for i := posA; i < posB; i++ {
		fromIdx := r.stops[i]
		found := false
		for _, ei := range t.stations[fromIdx].outgoing {
			if t.edges[ei].routeIdx == ri {
				total += t.edges[ei].travelTime
				found = true
				break
			}
		}
		if !found {
			// I4 guarantees this cannot happen for a well-formed route.
			return 0
		}
	}
	return total
}

// RoutesServing returns the union of (a) the routes of each outgoing edge
// at station, and (b) the routes whose terminal stop is station. The
// second half of that union is required because a terminal stop has no
// outgoing edge for its own route (I5). An unknown station is treated
// like a legitimately unserved one: it returns an empty result, not an
// error — queries never error on "no result" (§7); only passenger_count
// treats an unknown station as exceptional.
func (t *Topology) RoutesServing(station StationID) ([]RouteID, error) {
	si, ok := t.stationIndex[station]
	if !ok {
		return nil, nil
	}

	seen := make(map[int]bool)
	var result []RouteID
	for _, ei := range t.stations[si].outgoing {
		ri := t.edges[ei].routeIdx
		if !seen[ri] {
			seen[ri] = true
			result = append(result, t.routes[ri].id)
		}
	}
	for _, ri := range t.stations[si].terminalRoutes {
		if !seen[ri] {
			seen[ri] = true
			result = append(result, t.routes[ri].id)
		}
	}
	return result, nil
}

// StationExists reports whether id names a station in the topology.
func (t *Topology) StationExists(id StationID) bool {
	_, ok := t.stationIndex[id]
	return ok
}

// NumStations returns the number of stations in the topology.
func (t *Topology) NumStations() int { return len(t.stations) }

// NumLines returns the number of lines in the topology.
func (t *Topology) NumLines() int { return len(t.lines) }

// NumRoutes returns the number of routes in the topology.
func (t *Topology) NumRoutes() int { return len(t.routes) }
