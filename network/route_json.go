package network

import "encoding/json"

// stepDoc and travelRouteDoc mirror the Route JSON schema of §6, used to
// serialise TravelRoute for the Query Service and for logging.
type stepDoc struct {
	StartStationID string `json:"start_station_id"`
	EndStationID   string `json:"end_station_id"`
	LineID         string `json:"line_id"`
	RouteID        string `json:"route_id"`
	TravelTime     int    `json:"travel_time"`
}

type travelRouteDoc struct {
	StartStationID  string    `json:"start_station_id"`
	EndStationID    string    `json:"end_station_id"`
	TotalTravelTime int       `json:"total_travel_time"`
	Steps           []stepDoc `json:"steps"`
}

// MarshalJSON renders r using the Route JSON schema of §6.
func (r TravelRoute) MarshalJSON() ([]byte, error) {
	doc := travelRouteDoc{
		StartStationID:  string(r.StartStationID),
		EndStationID:    string(r.EndStationID),
		TotalTravelTime: r.TotalTravelTime,
		Steps:           make([]stepDoc, len(r.Steps)),
	}
	for i, s := range r.Steps {
		doc.Steps[i] = stepDoc{
			StartStationID: string(s.StartStationID),
			EndStationID:   string(s.EndStationID),
			LineID:         string(s.LineID),
			RouteID:        string(s.RouteID),
			TravelTime:     s.TravelTime,
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON parses r from the Route JSON schema of §6.
func (r *TravelRoute) UnmarshalJSON(data []byte) error {
	var doc travelRouteDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.StartStationID = StationID(doc.StartStationID)
	r.EndStationID = StationID(doc.EndStationID)
	r.TotalTravelTime = doc.TotalTravelTime
	r.Steps = make([]Step, len(doc.Steps))
	for i, s := range doc.Steps {
		r.Steps[i] = Step{
			StartStationID: StationID(s.StartStationID),
			EndStationID:   StationID(s.EndStationID),
			LineID:         LineID(s.LineID),
			RouteID:        RouteID(s.RouteID),
			TravelTime:     s.TravelTime,
		}
	}
	return nil
}
