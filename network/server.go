package network

import "sync"

// Server wraps a Topology with the fine-grained locking policy of §5:
// reads take a shared lock, mutations take an exclusive lock. It is the
// concurrency boundary used by the Query Service and Event Feed, which
// are independent front doors onto the same underlying Topology.
//
// The core Topology itself carries no locking, matching the single-owner
// model the algorithms are specified against; Server is purely additive
// for callers that need to share one Topology across goroutines.
type Server struct {
	mu  sync.RWMutex
	top *Topology
}

// NewServer wraps top for concurrent access.
func NewServer(top *Topology) *Server {
	return &Server{top: top}
}

func (s *Server) AddStation(st Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top.AddStation(st)
}

func (s *Server) AddLine(l Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top.AddLine(l)
}

func (s *Server) SetTravelTime(a, b StationID, t int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top.SetTravelTime(a, b, t)
}

func (s *Server) RecordEvent(evt PassengerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top.RecordEvent(evt)
}

func (s *Server) LoadFromTopology(doc []byte) (softOK bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LoadFromTopology(s.top, doc)
}

func (s *Server) Fastest(a, b StationID) TravelRoute {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top.Fastest(a, b)
}

func (s *Server) Quiet(a, b StationID, maxSlowdownPC, minQuietnessPC float64, maxNPaths int) TravelRoute {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top.Quiet(a, b, maxSlowdownPC, minQuietnessPC, maxNPaths)
}

func (s *Server) PassengerCount(station StationID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top.PassengerCount(station)
}

func (s *Server) RoutesServing(station StationID) ([]RouteID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top.RoutesServing(station)
}

func (s *Server) GetTravelTime(a, b StationID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top.GetTravelTime(a, b)
}

// StationExists reports whether station is registered.
func (s *Server) StationExists(station StationID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top.StationExists(station)
}

// Stats returns a snapshot of network size, used by the health endpoint.
func (s *Server) Stats() (stations, lines, routes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.top.NumStations(), s.top.NumLines(), s.top.NumRoutes()
}
