package comps

import (
	"cmp"
	"os"

	. "github.com/ttpr0/gtfs-graph/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// transit weighting
//*******************************************

type ConnectionWeight struct {
	Departure int32
	Arrival   int32
}

// TransitWeighting holds the departures of every connection for one
// service day, ordered by departure.
type TransitWeighting struct {
	transit_weights Array[List[ConnectionWeight]]
}

func NewTransitWeighting(schedule List[List[ConnectionWeight]]) *TransitWeighting {
	transit_weights := NewArray[List[ConnectionWeight]](schedule.Length())
	for i, weights := range schedule {
		sorted := NewList[ConnectionWeight](weights.Length())
		sorted = append(sorted, weights...)
		slices.SortStableFunc(sorted, func(a, b ConnectionWeight) int {
			return cmp.Compare(a.Departure, b.Departure)
		})
		transit_weights[i] = sorted
	}
	return &TransitWeighting{
		transit_weights: transit_weights,
	}
}

func (self *TransitWeighting) ConnectionCount() int {
	return self.transit_weights.Length()
}

// Returns the first departure on the connection at or after from.
func (self *TransitWeighting) GetNextWeight(connection int32, from int32) Optional[ConnectionWeight] {
	conn_weights := self.transit_weights[connection]
	for i := 0; i < conn_weights.Length(); i++ {
		if conn_weights[i].Departure >= from {
			return Some(conn_weights[i])
		}
	}
	return None[ConnectionWeight]()
}

// Returns all departures on the connection within [from, to].
func (self *TransitWeighting) GetWeightsInRange(connection int32, from, to int32) []ConnectionWeight {
	conn_weights := self.transit_weights[connection]
	start := -1
	end := -1
	for i := 0; i < conn_weights.Length(); i++ {
		if conn_weights[i].Departure >= from && start == -1 {
			start = i
		}
		if start != -1 && conn_weights[i].Departure > to {
			end = i
			break
		}
	}
	if start == -1 {
		return nil
	}
	if end == -1 {
		end = conn_weights.Length()
	}
	return conn_weights[start:end]
}
func (self *TransitWeighting) GetWeights(connection int32) []ConnectionWeight {
	return self.transit_weights[connection]
}

func (self *TransitWeighting) _New() *TransitWeighting {
	return &TransitWeighting{}
}
func (self *TransitWeighting) _Load(path string) error {
	reader, err := ReadFileBuffer(path + "-weight")
	if err != nil {
		return err
	}

	conn_count := Read[int32](reader)
	transit_weights := NewArray[List[ConnectionWeight]](int(conn_count))

	for i := 0; i < int(conn_count); i++ {
		schedule_count := Read[int32](reader)
		schedule := NewList[ConnectionWeight](int(schedule_count))
		for j := 0; j < int(schedule_count); j++ {
			departure := Read[int32](reader)
			arrival := Read[int32](reader)
			schedule.Add(ConnectionWeight{departure, arrival})
		}
		transit_weights[i] = schedule
	}

	*self = TransitWeighting{
		transit_weights: transit_weights,
	}
	return nil
}
func (self *TransitWeighting) _Store(path string) error {
	writer := NewBufferWriter()

	conn_count := self.transit_weights.Length()
	Write(writer, int32(conn_count))
	for i := 0; i < conn_count; i++ {
		conn_weights := self.transit_weights[i]
		schedule_count := conn_weights.Length()
		Write(writer, int32(schedule_count))
		for j := 0; j < schedule_count; j++ {
			conn_weight := conn_weights[j]
			Write(writer, conn_weight.Departure)
			Write(writer, conn_weight.Arrival)
		}
	}

	return WriteBufferToFile(writer, path+"-weight")
}
func (self *TransitWeighting) _Remove(path string) {
	os.Remove(path + "-weight")
}
