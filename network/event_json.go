package network

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// eventTimeLayout matches an ISO-8601 timestamp once its trailing 'Z' has
// been stripped, per §6.
const eventTimeLayout = "2006-01-02T15:04:05"

type passengerEventDoc struct {
	StationID      string `json:"station_id"`
	PassengerEvent string `json:"passenger_event"`
	DateTime       string `json:"datetime"`
}

// DecodePassengerEvent parses the passenger event JSON schema of §6:
// {station_id, passenger_event: "in"|"out", datetime}. The trailing 'Z'
// is stripped from datetime before parsing, matching the wire format's
// documented convention.
func DecodePassengerEvent(data []byte) (PassengerEvent, error) {
	var d passengerEventDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return PassengerEvent{}, fmt.Errorf("decoding passenger event: %w", err)
	}

	var kind EventKind
	switch strings.ToLower(d.PassengerEvent) {
	case "in":
		kind = EventIn
	case "out":
		kind = EventOut
	default:
		return PassengerEvent{}, fmt.Errorf("kind %q: %w", d.PassengerEvent, ErrBadEventKind)
	}

	ts, err := time.Parse(eventTimeLayout, strings.TrimSuffix(d.DateTime, "Z"))
	if err != nil {
		return PassengerEvent{}, fmt.Errorf("parsing datetime %q: %w", d.DateTime, err)
	}

	return PassengerEvent{
		StationID: StationID(d.StationID),
		Kind:      kind,
		Timestamp: ts,
	}, nil
}
