package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/gtfs-graph/comps"
	"github.com/ttpr0/gtfs-graph/geo"
	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

func buildTestGraph(t *testing.T, feed GTFSFeed) *GTFSGraph {
	t.Helper()
	graph, err := BuildGtfs(feed, testFilter)
	require.NoError(t, err)
	requireLengthInvariant(t, graph)
	return graph
}

func requireLengthInvariant(t *testing.T, graph *GTFSGraph) {
	t.Helper()
	for _, day := range structs.WEEKDAYS {
		require.Equal(t, graph.ConnectionCount(), graph.GetSchedule(day).Length(), "schedule length of %v", day)
	}
}

func weights(pairs ...[2]int32) List[comps.ConnectionWeight] {
	list := NewList[comps.ConnectionWeight](len(pairs))
	for _, p := range pairs {
		list.Add(comps.ConnectionWeight{Departure: p[0], Arrival: p[1]})
	}
	return list
}

func TestBuildGraphSingleTrip(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 2),
			geoStop("B", 3, 4),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T1", "A", 1, "08:00:00", "08:00:00"),
			visit("T1", "B", 2, "08:05:00", "08:05:00"),
		},
		Trips: List[GTFSTripRow]{tripRow("T1", "R1", "S1")},
	})

	assert.Equal(t, Array[structs.Node]{{Loc: geo.Coord{1, 2}}, {Loc: geo.Coord{3, 4}}}, graph.Stops())
	assert.Equal(t, Array[structs.Connection]{{StopA: 0, StopB: 1, RouteID: "R1"}}, graph.Connections())
	assert.Equal(t, weights([2]int32{28800, 29100}), graph.GetSchedule(structs.MONDAY)[0])
	for _, day := range structs.WEEKDAYS[1:] {
		assert.Empty(t, graph.GetSchedule(day)[0], "%v", day)
	}
}

func TestBuildGraphPlatformUsesStation(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			childStop("P", "S", 0),
			{StopID: "S", Lon: Some(5.0), Lat: Some(5.0), LocationType: Some(1)},
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T1", "A", 1, "08:00:00", "08:00:00"),
			visit("T1", "P", 2, "08:05:00", "08:06:00"),
			visit("T1", "A", 3, "08:10:00", "08:10:00"),
		},
		Trips: List[GTFSTripRow]{tripRow("T1", "R1", "S1")},
	})

	assert.Equal(t, 2, graph.StopCount())
	assert.Equal(t, geo.Coord{5, 5}, graph.GetStop(1).Loc)
	assert.Equal(t, Array[structs.Connection]{
		{StopA: 0, StopB: 1, RouteID: "R1"},
		{StopA: 1, StopB: 0, RouteID: "R1"},
	}, graph.Connections())
	assert.Equal(t, weights([2]int32{29160, 29400}), graph.GetSchedule(structs.MONDAY)[1])
}

func TestBuildGraphBoardingAreaUsesStation(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("S", 1, 1),
			childStop("P", "S", 0),
			childStop("BA", "P", 4),
			geoStop("B", 2, 2),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T1", "BA", 1, "08:00:00", "08:00:00"),
			visit("T1", "B", 2, "08:05:00", "08:05:00"),
		},
		Trips: List[GTFSTripRow]{tripRow("T1", "R1", "S1")},
	})

	assert.Equal(t, 2, graph.StopCount())
	assert.Equal(t, Array[structs.Connection]{{StopA: 0, StopB: 1, RouteID: "R1"}}, graph.Connections())
}

func TestBuildGraphFilteredStop(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			geoStop("C", 50, 1),
			geoStop("B", 2, 1),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T1", "A", 1, "08:00:00", "08:00:00"),
			visit("T1", "C", 2, "08:05:00", "08:05:00"),
			visit("T1", "B", 3, "08:10:00", "08:10:00"),
		},
		Trips: List[GTFSTripRow]{tripRow("T1", "R1", "S1")},
	})

	assert.Equal(t, Array[structs.Node]{{Loc: geo.Coord{1, 1}}, {Loc: geo.Coord{2, 1}}}, graph.Stops())
	assert.Equal(t, Array[structs.Connection]{{StopA: 0, StopB: 1, RouteID: "R1"}}, graph.Connections())
	assert.Equal(t, weights([2]int32{28800, 29400}), graph.GetSchedule(structs.MONDAY)[0])
}

func TestBuildGraphDeduplicatesAcrossWeekdays(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{
			{ServiceID: "MON", Monday: 1},
			{ServiceID: "TUE", Tuesday: 1},
		},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			geoStop("B", 2, 1),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T1", "A", 1, "08:00:00", "08:00:00"),
			visit("T1", "B", 2, "08:05:00", "08:05:00"),
			visit("T2", "A", 1, "09:00:00", "09:00:00"),
			visit("T2", "B", 2, "09:05:00", "09:05:00"),
		},
		Trips: List[GTFSTripRow]{
			tripRow("T1", "R1", "MON"),
			tripRow("T2", "R1", "TUE"),
		},
	})

	require.Equal(t, 1, graph.ConnectionCount())
	assert.Equal(t, weights([2]int32{28800, 29100}), graph.GetSchedule(structs.MONDAY)[0])
	assert.Equal(t, weights([2]int32{32400, 32700}), graph.GetSchedule(structs.TUESDAY)[0])
	for _, day := range structs.WEEKDAYS[2:] {
		assert.Empty(t, graph.GetSchedule(day)[0], "%v", day)
	}
}

func TestBuildGraphRoutesAreSeparateConnections(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			geoStop("B", 2, 1),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T1", "A", 1, "08:00:00", "08:00:00"),
			visit("T1", "B", 2, "08:05:00", "08:05:00"),
			visit("T2", "A", 1, "09:00:00", "09:00:00"),
			visit("T2", "B", 2, "09:05:00", "09:05:00"),
			visit("T3", "A", 1, "10:00:00", "10:00:00"),
			visit("T3", "B", 2, "10:05:00", "10:05:00"),
		},
		Trips: List[GTFSTripRow]{
			tripRow("T1", "R1", "S1"),
			tripRow("T2", "R2", "S1"),
			tripRow("T3", "R1", "S1"),
		},
	})

	require.Equal(t, 2, graph.ConnectionCount())
	r1 := graph.GetConnectionID(0, 1, "R1")
	r2 := graph.GetConnectionID(0, 1, "R2")
	require.True(t, r1.HasValue())
	require.True(t, r2.HasValue())
	assert.Equal(t, int32(0), r1.Value)
	assert.Equal(t, int32(1), r2.Value)
	assert.Equal(t, weights([2]int32{28800, 29100}, [2]int32{36000, 36300}), graph.GetSchedule(structs.MONDAY)[0])
	assert.False(t, graph.GetConnectionID(1, 0, "R1").HasValue())
}

func TestBuildGraphWeekdayCompleteness(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "MW", Monday: 1, Wednesday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			geoStop("B", 2, 1),
			geoStop("C", 3, 1),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T1", "A", 1, "23:50:00", "23:55:00"),
			visit("T1", "B", 2, "24:05:00", "24:06:00"),
			visit("T1", "C", 3, "24:20:00", "24:20:00"),
		},
		Trips: List[GTFSTripRow]{tripRow("T1", "R1", "MW")},
	})

	require.Equal(t, 2, graph.ConnectionCount())
	for conn := 0; conn < graph.ConnectionCount(); conn++ {
		for _, day := range structs.WEEKDAYS {
			count := graph.GetSchedule(day)[conn].Length()
			if day == structs.MONDAY || day == structs.WEDNESDAY {
				assert.Equal(t, 1, count, "%v", day)
			} else {
				assert.Equal(t, 0, count, "%v", day)
			}
		}
	}
	// times past midnight stay above one day
	assert.Equal(t, weights([2]int32{86760, 87600}), graph.GetSchedule(structs.WEDNESDAY)[1])
}

func TestBuildGraphSkipsTripsWithoutRouteOrService(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			geoStop("B", 2, 1),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("NO_ROUTE", "A", 1, "08:00:00", "08:00:00"),
			visit("NO_ROUTE", "B", 2, "08:05:00", "08:05:00"),
			visit("NO_SERVICE", "A", 1, "08:00:00", "08:00:00"),
			visit("NO_SERVICE", "B", 2, "08:05:00", "08:05:00"),
			visit("NO_META", "A", 1, "08:00:00", "08:00:00"),
			visit("NO_META", "B", 2, "08:05:00", "08:05:00"),
		},
		Trips: List[GTFSTripRow]{
			{TripID: "NO_ROUTE", ServiceID: Some("S1")},
			tripRow("NO_SERVICE", "R1", "UNKNOWN"),
		},
	})

	assert.Equal(t, 2, graph.StopCount())
	assert.Equal(t, 0, graph.ConnectionCount())
}

func TestBuildGraphDeterministic(t *testing.T) {
	feed := GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1, Sunday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			geoStop("B", 2, 1),
			geoStop("C", 3, 1),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T2", "C", 1, "08:00:00", "08:00:00"),
			visit("T2", "B", 2, "08:05:00", "08:05:00"),
			visit("T1", "A", 1, "07:00:00", "07:00:00"),
			visit("T1", "B", 2, "07:05:00", "07:05:00"),
			visit("T1", "C", 3, "07:10:00", "07:10:00"),
		},
		Trips: List[GTFSTripRow]{
			tripRow("T1", "R1", "S1"),
			tripRow("T2", "R1", "S1"),
		},
	}
	first := buildTestGraph(t, feed)
	second := buildTestGraph(t, feed)

	// T2 appears first in stop_times and creates the first connection
	assert.Equal(t, structs.Connection{StopA: 2, StopB: 1, RouteID: "R1"}, first.GetConnection(0))
	assert.Equal(t, first.Connections(), second.Connections())
	for _, day := range structs.WEEKDAYS {
		assert.Equal(t, first.GetSchedule(day), second.GetSchedule(day))
	}
}

func TestBuildGraphInvalidWeekday(t *testing.T) {
	stops := testStops(t)
	services := Dict[string, GTFSService]{
		"BROKEN": {ServiceID: "BROKEN", Days: List[structs.Weekday]{structs.MONDAY, structs.Weekday(9)}},
	}
	trips, err := AssembleTrips(List[GTFSStopTimeRow]{
		visit("T1", "A", 1, "08:00:00", "08:00:00"),
		visit("T1", "B", 2, "08:05:00", "08:05:00"),
	}, List[GTFSTripRow]{tripRow("T1", "R1", "BROKEN")}, stops, services)
	require.NoError(t, err)

	_, err = BuildTransitGraph(trips, stops, services)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestBuildGraphUnresolvedStop(t *testing.T) {
	stops := testStops(t)
	services := testServices()
	trips := NewGTFSTrips(1)
	trip := trips.GetOrAdd("T1")
	trip.RouteID = Some("R1")
	trip.ServiceID = Some("mon")
	trip.Stops.Add(GTFSTripStop{StopID: "A", Sequence: 1})
	trip.Stops.Add(GTFSTripStop{StopID: "GHOST", Sequence: 2})

	_, err := BuildTransitGraph(trips, stops, services)
	assert.ErrorIs(t, err, ErrUnresolvedStop)
}

func TestGraphSummaryAndTransit(t *testing.T) {
	graph := buildTestGraph(t, GTFSFeed{
		Calendar: List[GTFSCalendarRow]{{ServiceID: "S1", Monday: 1, Friday: 1}},
		Stops: List[GTFSStopRow]{
			geoStop("A", 1, 1),
			geoStop("B", 2, 1),
		},
		StopTimes: List[GTFSStopTimeRow]{
			visit("T2", "A", 1, "09:00:00", "09:00:00"),
			visit("T2", "B", 2, "09:05:00", "09:05:00"),
			visit("T1", "A", 1, "08:00:00", "08:00:00"),
			visit("T1", "B", 2, "08:05:00", "08:05:00"),
		},
		Trips: List[GTFSTripRow]{
			tripRow("T1", "R1", "S1"),
			tripRow("T2", "R1", "S1"),
		},
	})

	summary := graph.Summary()
	assert.Equal(t, 2, summary.Stops)
	assert.Equal(t, 1, summary.Connections)
	assert.Equal(t, 2, summary.Departures[structs.MONDAY])
	assert.Equal(t, 0, summary.Departures[structs.TUESDAY])
	assert.Equal(t, 2, summary.Departures[structs.FRIDAY])

	transit, weightings := graph.ToTransit()
	assert.Equal(t, 2, transit.StopCount())
	assert.Equal(t, 1, transit.ConnectionCount())
	assert.Equal(t, structs.WEEKDAY_COUNT, weightings.Length())
	// weightings are ordered by departure
	next := weightings[structs.MONDAY].GetNextWeight(0, 0)
	require.True(t, next.HasValue())
	assert.Equal(t, int32(28800), next.Value.Departure)
	assert.False(t, weightings[structs.SUNDAY].GetNextWeight(0, 0).HasValue())
}
