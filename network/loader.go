package network

import (
	"encoding/json"
	"fmt"
)

// topologyDoc mirrors the topology JSON schema of §6: three top-level
// arrays for stations, lines (with their nested routes) and, optionally,
// travel times.
type topologyDoc struct {
	Stations []struct {
		StationID string `json:"station_id"`
		Name      string `json:"name"`
	} `json:"stations"`
	Lines []struct {
		LineID string `json:"line_id"`
		Name   string `json:"name"`
		Routes []struct {
			RouteID        string   `json:"route_id"`
			Direction      string   `json:"direction"`
			LineID         string   `json:"line_id"`
			StartStationID string   `json:"start_station_id"`
			EndStationID   string   `json:"end_station_id"`
			RouteStops     []string `json:"route_stops"`
		} `json:"routes"`
	} `json:"lines"`
	TravelTimes []struct {
		StartStationID string `json:"start_station_id"`
		EndStationID   string `json:"end_station_id"`
		TravelTime     uint   `json:"travel_time"`
	} `json:"travel_times"`
}

// LoadFromTopology bulk-ingests a topology JSON document (§6) into top.
// It returns (false, nil) if stations and lines loaded successfully but
// the travel_times section was missing or partially applied — a soft
// failure that still leaves the topology structurally usable, matching
// the documented contract of the original TransportNetwork::FromJson.
// A malformed top-level document, or a station/line/route that fails
// Topology's own validation, is a fatal ErrTopologyError.
func LoadFromTopology(top *Topology, doc []byte) (softOK bool, err error) {
	var d topologyDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return false, fmt.Errorf("decoding topology document: %w: %w", err, ErrTopologyError)
	}

	for _, s := range d.Stations {
		if err := top.AddStation(Station{ID: StationID(s.StationID), Name: s.Name}); err != nil {
			return false, fmt.Errorf("adding station %q: %w: %w", s.StationID, err, ErrTopologyError)
		}
	}

	for _, l := range d.Lines {
		line := Line{ID: LineID(l.LineID), Name: l.Name}
		for _, r := range l.Routes {
			stops := make([]StationID, len(r.RouteStops))
			for i, s := range r.RouteStops {
				stops[i] = StationID(s)
			}
			line.Routes = append(line.Routes, Route{
				ID:             RouteID(r.RouteID),
				LineID:         LineID(r.LineID),
				Direction:      r.Direction,
				StartStationID: StationID(r.StartStationID),
				EndStationID:   StationID(r.EndStationID),
				Stops:          stops,
			})
		}
		if err := top.AddLine(line); err != nil {
			return false, fmt.Errorf("adding line %q: %w: %w", l.LineID, err, ErrTopologyError)
		}
	}

	if len(d.TravelTimes) == 0 {
		return false, nil
	}

	allApplied := true
	for _, tt := range d.TravelTimes {
		if err := top.SetTravelTime(StationID(tt.StartStationID), StationID(tt.EndStationID), int(tt.TravelTime)); err != nil {
			allApplied = false
		}
	}
	return allApplied, nil
}
