package parser

import (
	"cmp"
	"fmt"

	. "github.com/ttpr0/gtfs-graph/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// trips
//*******************************************

// GTFSTrips holds the assembled trips in order of first appearance in
// stop_times.txt.
type GTFSTrips struct {
	trips List[*GTFSTrip]
	index Dict[string, int]
}

func NewGTFSTrips(cap int) *GTFSTrips {
	return &GTFSTrips{
		trips: NewList[*GTFSTrip](cap),
		index: NewDict[string, int](cap),
	}
}

func (self *GTFSTrips) TripCount() int {
	return self.trips.Length()
}
func (self *GTFSTrips) GetTrip(i int) *GTFSTrip {
	return self.trips[i]
}
func (self *GTFSTrips) Get(trip_id string) Optional[*GTFSTrip] {
	i, ok := self.index[trip_id]
	if !ok {
		return None[*GTFSTrip]()
	}
	return Some(self.trips[i])
}
func (self *GTFSTrips) GetOrAdd(trip_id string) *GTFSTrip {
	if i, ok := self.index[trip_id]; ok {
		return self.trips[i]
	}
	trip := &GTFSTrip{
		TripID: trip_id,
		Stops:  NewList[GTFSTripStop](10),
	}
	self.index[trip_id] = self.trips.Length()
	self.trips.Add(trip)
	return trip
}

// Iterates trips in order of first appearance.
func (self *GTFSTrips) All() func(yield func(*GTFSTrip) bool) {
	return func(yield func(*GTFSTrip) bool) {
		for _, trip := range self.trips {
			if !yield(trip) {
				return
			}
		}
	}
}

// AssembleTrips joins stop_times.txt and trips.txt.
//
// Visits of stops unknown to the stop mapping are skipped. Visits are
// ordered by stop_sequence, equal sequences keep their row order. A trip only
// gets a service if the service is part of the calendar.
func AssembleTrips(stop_times List[GTFSStopTimeRow], trip_rows List[GTFSTripRow], stops *GTFSStops, services Dict[string, GTFSService]) (*GTFSTrips, error) {
	trips := NewGTFSTrips(100)

	for i, row := range stop_times {
		if !stops.ContainsStop(row.StopID) {
			continue
		}
		arrival, err := ParseTime(row.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("stop_times row %d of trip %s: arrival: %w", i+1, row.TripID, err)
		}
		departure, err := ParseTime(row.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("stop_times row %d of trip %s: departure: %w", i+1, row.TripID, err)
		}
		trip := trips.GetOrAdd(row.TripID)
		trip.Stops.Add(GTFSTripStop{
			StopID:    row.StopID,
			Arrival:   arrival,
			Departure: departure,
			Sequence:  row.StopSequence,
		})
	}
	for trip := range trips.All() {
		slices.SortStableFunc(trip.Stops, func(a, b GTFSTripStop) int {
			return cmp.Compare(a.Sequence, b.Sequence)
		})
	}

	for _, row := range trip_rows {
		item := trips.Get(row.TripID)
		if !item.HasValue() {
			continue
		}
		trip := item.Value
		if row.RouteID.HasValue() {
			trip.RouteID = row.RouteID
		}
		if row.ServiceID.HasValue() && services.ContainsKey(row.ServiceID.Value) {
			trip.ServiceID = row.ServiceID
		}
	}

	return trips, nil
}
