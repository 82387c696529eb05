package parser

import (
	"github.com/ttpr0/gtfs-graph/geo"
	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

//*******************************************
// gtfs feed rows
//*******************************************

type GTFSCalendarRow struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
}

// Returns the weekday flags in monday..sunday order.
func (self GTFSCalendarRow) Flags() [structs.WEEKDAY_COUNT]int {
	return [structs.WEEKDAY_COUNT]int{self.Monday, self.Tuesday, self.Wednesday, self.Thursday, self.Friday, self.Saturday, self.Sunday}
}

type GTFSStopRow struct {
	StopID       string            `csv:"stop_id"`
	Lon          Optional[float64] `csv:"stop_lon"`
	Lat          Optional[float64] `csv:"stop_lat"`
	Parent       Optional[string]  `csv:"parent_station"`
	LocationType Optional[int]     `csv:"location_type"`
}

type GTFSStopTimeRow struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
}

type GTFSTripRow struct {
	TripID    string           `csv:"trip_id"`
	RouteID   Optional[string] `csv:"route_id"`
	ServiceID Optional[string] `csv:"service_id"`
}

//*******************************************
// gtfs entities
//*******************************************

type GTFSService struct {
	ServiceID string
	Days      List[structs.Weekday]
}

func (self GTFSService) IsActive(day structs.Weekday) bool {
	for _, d := range self.Days {
		if d == day {
			return true
		}
	}
	return false
}

type GTFSStop struct {
	StopID string
	Loc    Optional[geo.Coord]
	Type   LocationType
	Parent Optional[string]
}

type GTFSTripStop struct {
	StopID    string
	Arrival   int32
	Departure int32
	Sequence  int
}

type GTFSTrip struct {
	TripID    string
	RouteID   Optional[string]
	ServiceID Optional[string]
	Stops     List[GTFSTripStop]
}

//*******************************************
// location types
//*******************************************

type LocationType byte

const (
	STOP_OR_PLATFORM LocationType = 0
	STATION          LocationType = 1
	ENTRANCE         LocationType = 2
	GENERIC_NODE     LocationType = 3
	BOARDING_AREA    LocationType = 4
	OTHER_LOCATION   LocationType = 5
)

// Maps the location_type code of stops.txt. A missing code is a stop or platform.
func LocationTypeFromCode(code Optional[int]) LocationType {
	if !code.HasValue() {
		return STOP_OR_PLATFORM
	}
	switch code.Value {
	case 0:
		return STOP_OR_PLATFORM
	case 1:
		return STATION
	case 2:
		return ENTRANCE
	case 3:
		return GENERIC_NODE
	case 4:
		return BOARDING_AREA
	default:
		return OTHER_LOCATION
	}
}

// Only stops, platforms and stations carry usable coordinates.
func (self LocationType) IsGeographic() bool {
	return self == STOP_OR_PLATFORM || self == STATION
}

func (self LocationType) String() string {
	switch self {
	case STOP_OR_PLATFORM:
		return "stop"
	case STATION:
		return "station"
	case ENTRANCE:
		return "entrance"
	case GENERIC_NODE:
		return "generic-node"
	case BOARDING_AREA:
		return "boarding-area"
	default:
		return "other"
	}
}
