package comps

import (
	"os"

	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

//*******************************************
// transit-data
//*******************************************

// Transit holds the stops and connections of a transit graph.
type Transit struct {
	stops       Array[structs.Node]
	connections Array[structs.Connection]
}

func NewTransit(stops Array[structs.Node], connections Array[structs.Connection]) *Transit {
	return &Transit{
		stops:       stops,
		connections: connections,
	}
}

func (self *Transit) StopCount() int {
	return self.stops.Length()
}
func (self *Transit) GetStop(stop int32) structs.Node {
	return self.stops[stop]
}
func (self *Transit) ConnectionCount() int {
	return self.connections.Length()
}
func (self *Transit) GetConnection(connection int32) structs.Connection {
	return self.connections[connection]
}

// Calls the callback for every connection leaving the stop.
func (self *Transit) ForOutgoingConnections(stop int32, callback func(int32, structs.Connection)) {
	for i, conn := range self.connections {
		if conn.StopA == stop {
			callback(int32(i), conn)
		}
	}
}

func (self *Transit) _New() *Transit {
	return &Transit{}
}
func (self *Transit) _Load(path string) error {
	stops, err := ReadArrayFromFile[structs.Node](path + "-stops")
	if err != nil {
		return err
	}
	reader, err := ReadFileBuffer(path + "-connections")
	if err != nil {
		return err
	}
	route_count := Read[int32](reader)
	routes := NewArray[string](int(route_count))
	for i := 0; i < int(route_count); i++ {
		routes[i] = ReadString(reader)
	}
	conn_count := Read[int32](reader)
	connections := NewArray[structs.Connection](int(conn_count))
	for i := 0; i < int(conn_count); i++ {
		stop_a := Read[int32](reader)
		stop_b := Read[int32](reader)
		route := Read[int32](reader)
		connections[i] = structs.Connection{
			StopA:   stop_a,
			StopB:   stop_b,
			RouteID: routes[route],
		}
	}

	*self = Transit{
		stops:       stops,
		connections: connections,
	}
	return nil
}
func (self *Transit) _Store(path string) error {
	if err := WriteArrayToFile(self.stops, path+"-stops"); err != nil {
		return err
	}

	// route ids are stored once and referenced by index
	routes := NewList[string](100)
	route_index := NewDict[string, int32](100)
	for _, conn := range self.connections {
		if !route_index.ContainsKey(conn.RouteID) {
			route_index[conn.RouteID] = int32(routes.Length())
			routes.Add(conn.RouteID)
		}
	}
	writer := NewBufferWriter()
	Write(writer, int32(routes.Length()))
	for _, route := range routes {
		WriteString(writer, route)
	}
	Write(writer, int32(self.connections.Length()))
	for _, conn := range self.connections {
		Write(writer, conn.StopA)
		Write(writer, conn.StopB)
		Write(writer, route_index[conn.RouteID])
	}
	return WriteBufferToFile(writer, path+"-connections")
}
func (self *Transit) _Remove(path string) {
	os.Remove(path + "-stops")
	os.Remove(path + "-connections")
}
