package export

import (
	"github.com/ttpr0/gtfs-graph/comps"
	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

// ITransitGraph is the graph written by the exporters.
type ITransitGraph interface {
	Stops() Array[structs.Node]
	Connections() Array[structs.Connection]
	GetSchedule(day structs.Weekday) List[List[comps.ConnectionWeight]]
}
