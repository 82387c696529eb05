package parser

import (
	"fmt"

	"github.com/ttpr0/gtfs-graph/geo"
	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

//*******************************************
// stop hierarchy
//*******************************************

// GTFSStops maps raw stop ids to the nodes of the transit graph.
type GTFSStops struct {
	nodes   Array[structs.Node]
	mapping Dict[string, int32]
	dropped int
}

func (self *GTFSStops) NodeCount() int {
	return self.nodes.Length()
}
func (self *GTFSStops) GetNode(node int32) structs.Node {
	return self.nodes[node]
}
func (self *GTFSStops) Nodes() Array[structs.Node] {
	return self.nodes
}

// Number of raw stops that resolved to a node.
func (self *GTFSStops) StopCount() int {
	return self.mapping.Length()
}

// Number of raw stop rows that were filtered or could not be resolved.
func (self *GTFSStops) DroppedCount() int {
	return self.dropped
}
func (self *GTFSStops) ContainsStop(stop_id string) bool {
	return self.mapping.ContainsKey(stop_id)
}
func (self *GTFSStops) MapStop(stop_id string) Optional[int32] {
	node, ok := self.mapping[stop_id]
	if !ok {
		return None[int32]()
	}
	return Some(node)
}

const (
	_UNRESOLVED byte = iota
	_VISITING
	_RESOLVED
	_DROPPED
)

// ResolveStops collapses the parent_station hierarchy of stops.txt.
//
// Stops without a parent become nodes in order of appearance. Boarding
// areas resolve to their grandparent if their parent has a parent, all other
// child stops to the node of their parent. Stops outside the filter, stops
// without coordinates and parent, and stops whose ancestor is missing are
// dropped.
func ResolveStops(rows List[GTFSStopRow], filter geo.IFilter) (*GTFSStops, error) {
	stops := NewList[GTFSStop](rows.Length())
	index := NewDict[string, int](rows.Length())
	dropped := 0
	for _, row := range rows {
		typ := LocationTypeFromCode(row.LocationType)
		var stop GTFSStop
		if !row.Lon.HasValue() || !row.Lat.HasValue() || !typ.IsGeographic() {
			if !row.Parent.HasValue() {
				dropped += 1
				continue
			}
			stop = GTFSStop{
				StopID: row.StopID,
				Loc:    None[geo.Coord](),
				Type:   typ,
				Parent: row.Parent,
			}
		} else {
			lon := row.Lon.Value
			lat := row.Lat.Value
			if !filter.Contains(lon, lat) {
				dropped += 1
				continue
			}
			stop = GTFSStop{
				StopID: row.StopID,
				Loc:    Some(geo.Coord{float32(lon), float32(lat)}),
				Type:   typ,
				Parent: row.Parent,
			}
		}
		if i, ok := index[stop.StopID]; ok {
			stops[i] = stop
		} else {
			index[stop.StopID] = stops.Length()
			stops.Add(stop)
		}
	}

	nodes := NewList[structs.Node](stops.Length())
	mapping := NewDict[string, int32](stops.Length())
	for _, stop := range stops {
		if stop.Parent.HasValue() {
			continue
		}
		mapping[stop.StopID] = int32(nodes.Length())
		nodes.Add(structs.Node{Loc: stop.Loc.Value})
	}

	state := NewArray[byte](stops.Length())
	var resolve func(i int) (Optional[int32], error)
	resolve = func(i int) (Optional[int32], error) {
		stop := stops[i]
		if !stop.Parent.HasValue() {
			return Some(mapping[stop.StopID]), nil
		}
		switch state[i] {
		case _RESOLVED:
			return Some(mapping[stop.StopID]), nil
		case _DROPPED:
			return None[int32](), nil
		case _VISITING:
			return None[int32](), fmt.Errorf("%w: cycle at stop %s", ErrMalformedHierarchy, stop.StopID)
		}
		state[i] = _VISITING

		parent_id := stop.Parent.Value
		parent, ok := index[parent_id]
		if ok && stop.Type == BOARDING_AREA && stops[parent].Parent.HasValue() {
			parent_id = stops[parent].Parent.Value
			parent, ok = index[parent_id]
		}
		if !ok {
			state[i] = _DROPPED
			return None[int32](), nil
		}
		node, err := resolve(parent)
		if err != nil {
			return node, err
		}
		if !node.HasValue() {
			state[i] = _DROPPED
			return node, nil
		}
		state[i] = _RESOLVED
		mapping[stop.StopID] = node.Value
		return node, nil
	}
	for i := range stops {
		node, err := resolve(i)
		if err != nil {
			return nil, err
		}
		if !node.HasValue() {
			dropped += 1
		}
	}

	return &GTFSStops{
		nodes:   Array[structs.Node](nodes),
		mapping: mapping,
		dropped: dropped,
	}, nil
}
