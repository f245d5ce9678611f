package network

import "fmt"

// RecordEvent applies a passenger event to its station's count. In
// increments the count, Out decrements it. The count may go negative if
// recording begins mid-day with more exits observed than entries (I7).
// Events are commutative deltas: replaying them in any order yields the
// same final count.
func (t *Topology) RecordEvent(evt PassengerEvent) error {
	si, ok := t.stationIndex[evt.StationID]
	if !ok {
		return fmt.Errorf("station %q: %w", evt.StationID, ErrUnknownStation)
	}

	switch evt.Kind {
	case EventIn:
		t.stations[si].passengers++
	case EventOut:
		t.stations[si].passengers--
	default:
		return fmt.Errorf("kind %q: %w", evt.Kind, ErrBadEventKind)
	}
	return nil
}

// PassengerCount returns the current passenger count at station.
func (t *Topology) PassengerCount(station StationID) (int64, error) {
	si, ok := t.stationIndex[station]
	if !ok {
		return 0, fmt.Errorf("station %q: %w", station, ErrUnknownStation)
	}
	return t.stations[si].passengers, nil
}
