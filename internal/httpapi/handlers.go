package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/transitnet/network-monitor/network"
)

const (
	defaultMaxSlowdownPC  = 0.2
	defaultMinQuietnessPC = 0.1
	defaultMaxNPaths      = 64
)

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status    string    `json:"status"`
	Stations  int       `json:"stations"`
	Lines     int       `json:"lines"`
	Routes    int       `json:"routes"`
	CheckedAt time.Time `json:"checked_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stations, lines, routes := s.top.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Stations:  stations,
		Lines:     lines,
		Routes:    routes,
		CheckedAt: time.Now().UTC(),
	})
}

func (s *Server) handleFastest(w http.ResponseWriter, r *http.Request) {
	from, to, ok := s.readFromTo(w, r)
	if !ok {
		return
	}
	if !s.top.StationExists(from) || !s.top.StationExists(to) {
		s.writeError(w, r, unknownStationOf(s.top, from, to))
		return
	}
	writeJSON(w, http.StatusOK, s.top.Fastest(from, to))
}

func (s *Server) handleQuiet(w http.ResponseWriter, r *http.Request) {
	from, to, ok := s.readFromTo(w, r)
	if !ok {
		return
	}
	if !s.top.StationExists(from) || !s.top.StationExists(to) {
		s.writeError(w, r, unknownStationOf(s.top, from, to))
		return
	}

	q := r.URL.Query()
	maxSlowdownPC := defaultMaxSlowdownPC
	minQuietnessPC := defaultMinQuietnessPC
	maxNPaths := defaultMaxNPaths

	if v := q.Get("max_slowdown_pc"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errors.New("max_slowdown_pc must be a number"))
			return
		}
		maxSlowdownPC = f
	}
	if v := q.Get("min_quietness_pc"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errors.New("min_quietness_pc must be a number"))
			return
		}
		minQuietnessPC = f
	}
	if v := q.Get("max_n_paths"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, errors.New("max_n_paths must be an integer"))
			return
		}
		maxNPaths = n
	}

	writeJSON(w, http.StatusOK, s.top.Quiet(from, to, maxSlowdownPC, minQuietnessPC, maxNPaths))
}

type passengerCountResponse struct {
	StationID string `json:"station_id"`
	Count     int64  `json:"passenger_count"`
}

func (s *Server) handleStationPassengers(w http.ResponseWriter, r *http.Request) {
	id := network.StationID(chi.URLParam(r, "id"))
	count, err := s.top.PassengerCount(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, passengerCountResponse{StationID: string(id), Count: count})
}

type stationRoutesResponse struct {
	StationID string            `json:"station_id"`
	RouteIDs  []network.RouteID `json:"route_ids"`
}

func (s *Server) handleStationRoutes(w http.ResponseWriter, r *http.Request) {
	id := network.StationID(chi.URLParam(r, "id"))
	routes, err := s.top.RoutesServing(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if routes == nil {
		routes = []network.RouteID{}
	}
	writeJSON(w, http.StatusOK, stationRoutesResponse{StationID: string(id), RouteIDs: routes})
}

func (s *Server) readFromTo(w http.ResponseWriter, r *http.Request) (network.StationID, network.StationID, bool) {
	q := r.URL.Query()
	from := q.Get("from")
	to := q.Get("to")
	if from == "" || to == "" {
		s.writeError(w, r, errors.New("from and to query parameters are required"))
		return "", "", false
	}
	return network.StationID(from), network.StationID(to), true
}

func unknownStationOf(top *network.Server, a, b network.StationID) error {
	if !top.StationExists(a) {
		return fmt.Errorf("station %q: %w", a, network.ErrUnknownStation)
	}
	return fmt.Errorf("station %q: %w", b, network.ErrUnknownStation)
}
