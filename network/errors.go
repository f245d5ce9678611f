package network

import "errors"

// Sentinel errors returned by Topology operations, including its
// passenger-count operations, and by LoadFromTopology.
// Callers should check for these with errors.Is; wrapping with fmt.Errorf
// and %w is used throughout to attach the offending ID.
var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrUnknownStation       = errors.New("unknown station")
	ErrUnknownLine          = errors.New("unknown line")
	ErrUnknownRoute         = errors.New("unknown route")
	ErrUnknownStopReference = errors.New("route references an unknown station")
	ErrDuplicateRouteID     = errors.New("duplicate route id")
	ErrNotAdjacent          = errors.New("stations are not adjacent")
	ErrBadEventKind         = errors.New("unrecognised passenger event kind")
	ErrInvalidRoute         = errors.New("route is not well formed")
	ErrTopologyError        = errors.New("malformed topology document")
)
