package structs

import (
	"encoding/json"
	"errors"
	"fmt"
)

//*******************************************
// weekday enum
//*******************************************

type Weekday byte

const (
	MONDAY    Weekday = 0
	TUESDAY   Weekday = 1
	WEDNESDAY Weekday = 2
	THURSDAY  Weekday = 3
	FRIDAY    Weekday = 4
	SATURDAY  Weekday = 5
	SUNDAY    Weekday = 6
)

const WEEKDAY_COUNT = 7

// All weekdays in calendar order (monday first).
var WEEKDAYS = [WEEKDAY_COUNT]Weekday{MONDAY, TUESDAY, WEDNESDAY, THURSDAY, FRIDAY, SATURDAY, SUNDAY}

func (self Weekday) IsValid() bool {
	return self <= SUNDAY
}

func (self Weekday) String() string {
	switch self {
	case MONDAY:
		return "monday"
	case TUESDAY:
		return "tuesday"
	case WEDNESDAY:
		return "wednesday"
	case THURSDAY:
		return "thursday"
	case FRIDAY:
		return "friday"
	case SATURDAY:
		return "saturday"
	case SUNDAY:
		return "sunday"
	default:
		return fmt.Sprintf("weekday(%d)", byte(self))
	}
}
func (self Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *Weekday) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	day, err := WeekdayFromString(typ)
	*self = day
	return err
}

func WeekdayFromString(s string) (Weekday, error) {
	switch s {
	case "monday":
		return MONDAY, nil
	case "tuesday":
		return TUESDAY, nil
	case "wednesday":
		return WEDNESDAY, nil
	case "thursday":
		return THURSDAY, nil
	case "friday":
		return FRIDAY, nil
	case "saturday":
		return SATURDAY, nil
	case "sunday":
		return SUNDAY, nil
	default:
		return MONDAY, errors.New("unknown weekday: " + s)
	}
}
