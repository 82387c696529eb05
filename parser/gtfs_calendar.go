package parser

import (
	"github.com/ttpr0/gtfs-graph/structs"
	. "github.com/ttpr0/gtfs-graph/util"
)

//*******************************************
// calendar index
//*******************************************

// BuildServices maps every service_id of calendar.txt to its active weekdays.
// Later rows with the same service_id replace earlier ones.
func BuildServices(rows List[GTFSCalendarRow]) Dict[string, GTFSService] {
	services := NewDict[string, GTFSService](rows.Length())
	for _, row := range rows {
		flags := row.Flags()
		days := NewList[structs.Weekday](structs.WEEKDAY_COUNT)
		for i, day := range structs.WEEKDAYS {
			if flags[i] == 1 {
				days.Add(day)
			}
		}
		services[row.ServiceID] = GTFSService{
			ServiceID: row.ServiceID,
			Days:      days,
		}
	}
	return services
}
