package parser

import (
	"fmt"

	"github.com/ttpr0/gtfs-graph/comps"
	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

//*******************************************
// transit graph
//*******************************************

// GTFSGraph is the transit graph built from a feed.
//
// The connection list and every weekday schedule always have the same
// length; schedule[day][conn] holds the (departure, arrival) pairs of the
// connection on that day.
type GTFSGraph struct {
	stops        Array[structs.Node]
	connections  List[structs.Connection]
	schedules    [structs.WEEKDAY_COUNT]List[List[comps.ConnectionWeight]]
	conn_mapping Dict[structs.ConnectionKey, int32]
}

func NewGTFSGraph(stops Array[structs.Node]) *GTFSGraph {
	graph := &GTFSGraph{
		stops:        stops,
		connections:  NewList[structs.Connection](100),
		conn_mapping: NewDict[structs.ConnectionKey, int32](100),
	}
	for i := range graph.schedules {
		graph.schedules[i] = NewList[List[comps.ConnectionWeight]](100)
	}
	return graph
}

func (self *GTFSGraph) StopCount() int {
	return self.stops.Length()
}
func (self *GTFSGraph) GetStop(stop int32) structs.Node {
	return self.stops[stop]
}
func (self *GTFSGraph) Stops() Array[structs.Node] {
	return self.stops
}
func (self *GTFSGraph) ConnectionCount() int {
	return self.connections.Length()
}
func (self *GTFSGraph) GetConnection(connection int32) structs.Connection {
	return self.connections[connection]
}
func (self *GTFSGraph) Connections() Array[structs.Connection] {
	return Array[structs.Connection](self.connections)
}

// Returns the index of the connection, if it exists.
func (self *GTFSGraph) GetConnectionID(stop_a, stop_b int32, route_id string) Optional[int32] {
	id, ok := self.conn_mapping[structs.ConnectionKey{StopA: stop_a, StopB: stop_b, RouteID: route_id}]
	if !ok {
		return None[int32]()
	}
	return Some(id)
}

// Returns the schedule of the day, parallel to the connections.
func (self *GTFSGraph) GetSchedule(day structs.Weekday) List[List[comps.ConnectionWeight]] {
	return self.schedules[day]
}

// Adds the connection if unseen and returns its index. A new connection gets
// an empty entry in every weekday schedule.
func (self *GTFSGraph) _AddConnection(conn structs.Connection) int32 {
	key := conn.Key()
	if id, ok := self.conn_mapping[key]; ok {
		return id
	}
	id := int32(self.connections.Length())
	self.connections.Add(conn)
	for i := range self.schedules {
		self.schedules[i].Add(NewList[comps.ConnectionWeight](4))
	}
	self.conn_mapping[key] = id
	return id
}

func (self *GTFSGraph) _AddWeight(connection int32, day structs.Weekday, weight comps.ConnectionWeight) error {
	if !day.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidWeekday, day)
	}
	self.schedules[day][connection].Add(weight)
	return nil
}

// Builds the transit component and one weighting per weekday.
func (self *GTFSGraph) ToTransit() (*comps.Transit, Dict[structs.Weekday, *comps.TransitWeighting]) {
	transit := comps.NewTransit(self.stops, self.Connections())
	weights := NewDict[structs.Weekday, *comps.TransitWeighting](structs.WEEKDAY_COUNT)
	for _, day := range structs.WEEKDAYS {
		weights[day] = comps.NewTransitWeighting(self.schedules[day])
	}
	return transit, weights
}

type GTFSSummary struct {
	Stops       int
	Connections int
	Departures  [structs.WEEKDAY_COUNT]int
}

func (self *GTFSGraph) Summary() GTFSSummary {
	summary := GTFSSummary{
		Stops:       self.stops.Length(),
		Connections: self.connections.Length(),
	}
	for _, day := range structs.WEEKDAYS {
		for _, weights := range self.schedules[day] {
			summary.Departures[day] += weights.Length()
		}
	}
	return summary
}

// BuildTransitGraph creates the connections between consecutive stops of
// every trip and collects their departures per weekday.
//
// Trips are processed in order of first appearance, so connection indices
// are stable for a given feed. Trips without route or service are skipped.
func BuildTransitGraph(trips *GTFSTrips, stops *GTFSStops, services Dict[string, GTFSService]) (*GTFSGraph, error) {
	graph := NewGTFSGraph(stops.Nodes())

	for trip := range trips.All() {
		if !trip.RouteID.HasValue() || !trip.ServiceID.HasValue() {
			continue
		}
		service, ok := services[trip.ServiceID.Value]
		if !ok {
			continue
		}
		route_id := trip.RouteID.Value
		trip_stops := trip.Stops
		for i := 0; i < trip_stops.Length()-1; i++ {
			curr_t_stop := trip_stops[i]
			next_t_stop := trip_stops[i+1]
			stop_a := stops.MapStop(curr_t_stop.StopID)
			if !stop_a.HasValue() {
				return nil, fmt.Errorf("%w: %s in trip %s", ErrUnresolvedStop, curr_t_stop.StopID, trip.TripID)
			}
			stop_b := stops.MapStop(next_t_stop.StopID)
			if !stop_b.HasValue() {
				return nil, fmt.Errorf("%w: %s in trip %s", ErrUnresolvedStop, next_t_stop.StopID, trip.TripID)
			}
			conn_id := graph._AddConnection(structs.Connection{
				StopA:   stop_a.Value,
				StopB:   stop_b.Value,
				RouteID: route_id,
			})
			weight := comps.ConnectionWeight{
				Departure: curr_t_stop.Departure,
				Arrival:   next_t_stop.Arrival,
			}
			for _, day := range service.Days {
				if err := graph._AddWeight(conn_id, day, weight); err != nil {
					return nil, fmt.Errorf("service %s: %w", service.ServiceID, err)
				}
			}
		}
	}

	return graph, nil
}
