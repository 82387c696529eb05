package export

import (
	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

//*******************************************
// json output
//*******************************************

type GTFSOutput struct {
	BuildID   string                              `json:"build_id,omitempty"`
	Stops     List[GTFSNode]                      `json:"stops"`
	Conns     List[GTFSConn]                      `json:"conns"`
	Schedules Dict[string, Array[List[[2]int32]]] `json:"schedules"`
}

type GTFSNode struct {
	Lon float32 `json:"lon"`
	Lat float32 `json:"lat"`
}

type GTFSConn struct {
	StopA   int32  `json:"stop_a"`
	StopB   int32  `json:"stop_b"`
	RouteID string `json:"route_id"`
}

func NewGTFSOutput(graph ITransitGraph, build_id string) GTFSOutput {
	stops := graph.Stops()
	conns := graph.Connections()
	output := GTFSOutput{
		BuildID:   build_id,
		Stops:     NewList[GTFSNode](stops.Length()),
		Conns:     NewList[GTFSConn](conns.Length()),
		Schedules: NewDict[string, Array[List[[2]int32]]](structs.WEEKDAY_COUNT),
	}
	for _, stop := range stops {
		output.Stops.Add(GTFSNode{Lon: stop.Loc.Lon(), Lat: stop.Loc.Lat()})
	}
	for _, conn := range conns {
		output.Conns.Add(GTFSConn{StopA: conn.StopA, StopB: conn.StopB, RouteID: conn.RouteID})
	}
	for _, day := range structs.WEEKDAYS {
		schedule := graph.GetSchedule(day)
		day_schedule := NewArray[List[[2]int32]](schedule.Length())
		for i, weights := range schedule {
			pairs := NewList[[2]int32](weights.Length())
			for _, w := range weights {
				pairs.Add([2]int32{w.Departure, w.Arrival})
			}
			day_schedule[i] = pairs
		}
		output.Schedules[day.String()] = day_schedule
	}
	return output
}

// Writes the graph as json.
func WriteJSON(graph ITransitGraph, build_id string, file string) error {
	return WriteJSONToFile(NewGTFSOutput(graph, build_id), file)
}

func ReadJSON(file string) (GTFSOutput, error) {
	return ReadJSONFromFile[GTFSOutput](file)
}
