package network

import (
	"math"

	"github.com/rhartert/sparsesets"
	"github.com/rhartert/yagh"
)

// RouteChangePenalty is added to the cost of a path whenever two
// consecutive edges belong to different routes. It is expressed in the
// same unit as travel times (minutes). No penalty applies at the origin
// (there is no incoming edge to compare against) or when the route is
// unchanged.
const RouteChangePenalty = 5

// pathStop is the true state of the path-finding search: a station plus
// the route used to arrive there. route is -1 for the origin, which has
// no arriving edge. Two edges of the same route can never target the
// same station (a route has no repeated stops), so (station, route)
// carries exactly the information the original (station, arriving edge)
// pair does, at a fraction of the state-space size.
type pathStop struct {
	station int
	route   int
}

func denseIndex(numRoutes int, p pathStop) int {
	return p.station*(numRoutes+1) + (p.route + 1)
}

func decodeDense(numRoutes, dense int) pathStop {
	return pathStop{station: dense / (numRoutes + 1), route: dense%(numRoutes+1) - 1}
}

// Fastest computes the minimum-cost walk from A to B under the
// travel-time-plus-route-change-penalty cost model. If A equals B, the
// result is a single zero-length step. If B is unreachable from A, the
// result has no steps and a total of 0. Any minimum-cost path may be
// returned; ties are not resolved deterministically.
func (t *Topology) Fastest(a, b StationID) TravelRoute {
	if a == b {
		return TravelRoute{
			StartStationID:  a,
			EndStationID:    b,
			TotalTravelTime: 0,
			Steps:           []Step{{StartStationID: a, EndStationID: b, TravelTime: 0}},
		}
	}

	ai, aok := t.stationIndex[a]
	bi, bok := t.stationIndex[b]
	if !aok || !bok {
		return TravelRoute{StartStationID: a, EndStationID: b}
	}

	total, chain, chainEdge, ok := t.shortestPathStops(ai, bi, nil)
	if !ok {
		return TravelRoute{StartStationID: a, EndStationID: b}
	}
	return TravelRoute{
		StartStationID:  a,
		EndStationID:    b,
		TotalTravelTime: total,
		Steps:           t.buildSteps(chain, chainEdge),
	}
}

// shortestPathStops runs the Dijkstra variant of §4.4.1 over the
// multigraph of pathStop nodes, from (ai, origin) to any pathStop whose
// station is bi. excluded, if non-nil, is a set of dense pathStop indices
// that may not be used anywhere in the returned path; it implements the
// node-exclusion strategy used by Quiet's k-shortest-paths search.
//
// The queue is drained fully rather than stopped at the first arrival at
// bi, per §4.4.1 step 2: a cheaper arrival via a different incoming route
// may still be in the queue.
func (t *Topology) shortestPathStops(ai, bi int, excluded *sparsesets.Set) (total int, chain []pathStop, chainEdge []int, ok bool) {
	numRoutes := len(t.routes)
	size := len(t.stations) * (numRoutes + 1)

	dist := make([]int, size)
	prevDense := make([]int, size)
	prevEdge := make([]int, size)
	for i := range dist {
		dist[i] = math.MaxInt
		prevDense[i] = -1
		prevEdge[i] = -1
	}

	source := pathStop{station: ai, route: -1}
	srcDense := denseIndex(numRoutes, source)
	dist[srcDense] = 0

	h := yagh.New[int](size)
	h.Put(srcDense, 0)

	bestDist := math.MaxInt
	bestDense := -1

	for h.Size() > 0 {
		entry := h.Pop()
		curDense, curDist := entry.Elem, entry.Cost
		cur := decodeDense(numRoutes, curDense)

		if cur.station == bi && curDist < bestDist {
			bestDist = curDist
			bestDense = curDense
		}

		for _, ei := range t.stations[cur.station].outgoing {
			e := t.edges[ei]
			neighbor := pathStop{station: e.next, route: e.routeIdx}
			nd := denseIndex(numRoutes, neighbor)
			if excluded != nil && excluded.Contains(nd) {
				continue
			}

			penalty := 0
			if cur.route != -1 && cur.route != e.routeIdx {
				penalty = RouteChangePenalty
			}
			cand := curDist + e.travelTime + penalty

			if cand < dist[nd] {
				dist[nd] = cand
				prevDense[nd] = curDense
				prevEdge[nd] = ei
				h.Put(nd, cand)
			}
		}
	}

	if bestDense == -1 {
		return 0, nil, nil, false
	}

	for d := bestDense; ; d = prevDense[d] {
		chain = append(chain, decodeDense(numRoutes, d))
		chainEdge = append(chainEdge, prevEdge[d])
		if d == srcDense {
			break
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
		chainEdge[i], chainEdge[j] = chainEdge[j], chainEdge[i]
	}
	return bestDist, chain, chainEdge, true
}

// buildSteps materialises a pathStop/edge chain, as produced by
// shortestPathStops, into the Step sequence of a TravelRoute.
// chainEdge[i] is the edge used to arrive at chain[i]; chainEdge[0] is
// always -1 (the origin has no arriving edge).
func (t *Topology) buildSteps(chain []pathStop, chainEdge []int) []Step {
	steps := make([]Step, 0, len(chain)-1)
	for i := 1; i < len(chain); i++ {
		e := t.edges[chainEdge[i]]
		r := t.routes[e.routeIdx]
		steps = append(steps, Step{
			StartStationID: t.stations[chain[i-1].station].id,
			EndStationID:   t.stations[chain[i].station].id,
			LineID:         t.lines[r.lineIdx].id,
			RouteID:        r.id,
			TravelTime:     e.travelTime,
		})
	}
	return steps
}

type quietCandidate struct {
	total     int
	chain     []pathStop
	chainEdge []int
	crowding  int
}

// Quiet returns the least-crowded route from A to B among those that cost
// no more than best*(1+maxSlowdownPC), where best is the fastest route's
// total travel time. The slower route is only adopted if it reduces
// crowding by at least minQuietnessPC relative to the fastest route;
// otherwise the fastest route is returned unchanged. maxNPaths bounds how
// many candidate paths are explored, trading completeness for cost.
func (t *Topology) Quiet(a, b StationID, maxSlowdownPC, minQuietnessPC float64, maxNPaths int) TravelRoute {
	fastest := t.Fastest(a, b)
	if a == b || len(fastest.Steps) == 0 {
		return fastest
	}

	ai := t.stationIndex[a]
	bi := t.stationIndex[b]
	numRoutes := len(t.routes)
	size := len(t.stations) * (numRoutes + 1)
	budget := float64(fastest.TotalTravelTime) * (1 + maxSlowdownPC)

	if maxNPaths < 1 {
		maxNPaths = 1
	}

	type frontierItem struct{ excluded []int }
	queue := []frontierItem{{excluded: nil}}
	seen := map[string]bool{}

	var candidates []quietCandidate
	explored := 0

	for len(queue) > 0 && explored < maxNPaths {
		item := queue[0]
		queue = queue[1:]
		explored++

		excludedSet := sparsesets.New(size)
		for _, d := range item.excluded {
			excludedSet.Insert(d)
		}

		total, chain, chainEdge, ok := t.shortestPathStops(ai, bi, excludedSet)
		if !ok || float64(total) > budget {
			continue
		}

		key := pathKey(chain)
		if seen[key] {
			continue
		}
		seen[key] = true

		candidates = append(candidates, quietCandidate{
			total:     total,
			chain:     chain,
			chainEdge: chainEdge,
			crowding:  t.crowding(chain),
		})

		for i := 1; i < len(chain)-1; i++ {
			next := make([]int, len(item.excluded), len(item.excluded)+1)
			copy(next, item.excluded)
			next = append(next, denseIndex(numRoutes, chain[i]))
			queue = append(queue, frontierItem{excluded: next})
		}
	}

	if len(candidates) == 0 {
		return fastest
	}

	fastestCrowding := candidates[0].crowding
	threshold := float64(fastestCrowding) * (1 - minQuietnessPC)

	best := -1
	for i, c := range candidates {
		if float64(c.crowding) > threshold {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if c.crowding < candidates[best].crowding {
			best = i
			continue
		}
		if c.crowding == candidates[best].crowding && c.total < candidates[best].total {
			best = i
		}
	}
	if best == -1 {
		return fastest
	}

	winner := candidates[best]
	return TravelRoute{
		StartStationID:  a,
		EndStationID:    b,
		TotalTravelTime: winner.total,
		Steps:           t.buildSteps(winner.chain, winner.chainEdge),
	}
}

// crowding sums max(0, passengerCount) over the interior stations of a
// pathStop chain, excluding the origin and destination.
func (t *Topology) crowding(chain []pathStop) int {
	total := 0
	for i := 1; i < len(chain)-1; i++ {
		if p := t.stations[chain[i].station].passengers; p > 0 {
			total += int(p)
		}
	}
	return total
}

// pathKey returns a canonical, comparable representation of a pathStop
// chain, used to deduplicate paths reached via different exclusion sets.
func pathKey(chain []pathStop) string {
	buf := make([]byte, 0, len(chain)*9)
	for _, p := range chain {
		buf = appendInt(buf, p.station)
		buf = append(buf, ':')
		buf = appendInt(buf, p.route)
		buf = append(buf, ',')
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	if v == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
