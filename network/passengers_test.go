package network

import (
	"errors"
	"testing"
)

func TestRecordEvent_inAndOut(t *testing.T) {
	top := NewTopology()
	top.AddStation(Station{ID: "A"})

	for i := 0; i < 3; i++ {
		if err := top.RecordEvent(PassengerEvent{StationID: "A", Kind: EventIn}); err != nil {
			t.Fatalf("RecordEvent(In): %v", err)
		}
	}
	for i := 0; i < 5; i++ {
		if err := top.RecordEvent(PassengerEvent{StationID: "A", Kind: EventOut}); err != nil {
			t.Fatalf("RecordEvent(Out): %v", err)
		}
	}

	got, err := top.PassengerCount("A")
	if err != nil {
		t.Fatalf("PassengerCount: %v", err)
	}
	if got != -2 {
		t.Errorf("PassengerCount(A): want -2, got %d", got)
	}
}

func TestRecordEvent_orderIndependent(t *testing.T) {
	interleavings := [][]EventKind{
		{EventIn, EventOut, EventIn, EventOut, EventOut},
		{EventOut, EventOut, EventOut, EventIn, EventIn},
	}
	for _, kinds := range interleavings {
		top := NewTopology()
		top.AddStation(Station{ID: "A"})
		for _, k := range kinds {
			if err := top.RecordEvent(PassengerEvent{StationID: "A", Kind: k}); err != nil {
				t.Fatalf("RecordEvent: %v", err)
			}
		}
		got, _ := top.PassengerCount("A")
		if got != -1 {
			t.Errorf("PassengerCount after %v: want -1, got %d", kinds, got)
		}
	}
}

func TestRecordEvent_unknownStation(t *testing.T) {
	top := NewTopology()
	err := top.RecordEvent(PassengerEvent{StationID: "Z", Kind: EventIn})
	if !errors.Is(err, ErrUnknownStation) {
		t.Errorf("RecordEvent unknown station: want ErrUnknownStation, got %v", err)
	}
}

func TestRecordEvent_badKind(t *testing.T) {
	top := NewTopology()
	top.AddStation(Station{ID: "A"})
	err := top.RecordEvent(PassengerEvent{StationID: "A", Kind: EventUnknown})
	if !errors.Is(err, ErrBadEventKind) {
		t.Errorf("RecordEvent bad kind: want ErrBadEventKind, got %v", err)
	}
}

func TestPassengerCount_unknownStation(t *testing.T) {
	top := NewTopology()
	_, err := top.PassengerCount("Z")
	if !errors.Is(err, ErrUnknownStation) {
		t.Errorf("PassengerCount unknown station: want ErrUnknownStation, got %v", err)
	}
}
