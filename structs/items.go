package structs

import (
	"github.com/ttpr0/gtfs-graph/geo"
)

//*******************************************
// graph structs
//*******************************************

// Node is a canonical stop of the transit graph.
type Node struct {
	Loc geo.Coord
}

// Connection is a scheduled hop between two stops on a route.
type Connection struct {
	StopA   int32
	StopB   int32
	RouteID string
}

// Key identifying a connection.
type ConnectionKey struct {
	StopA   int32
	StopB   int32
	RouteID string
}

func (self Connection) Key() ConnectionKey {
	return ConnectionKey{StopA: self.StopA, StopB: self.StopB, RouteID: self.RouteID}
}
