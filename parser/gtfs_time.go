package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTime converts a "H:MM:SS" clock value to seconds since midnight.
//
// The hour is not capped, so trips running past midnight yield values
// above 86399.
func ParseTime(time_str string) (int32, error) {
	tokens := strings.Split(strings.TrimSpace(time_str), ":")
	if len(tokens) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, time_str)
	}
	values := [3]int64{}
	for i, token := range tokens {
		if token == "" || strings.TrimLeft(token, "0123456789") != "" {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, time_str)
		}
		if i >= 3 {
			continue
		}
		value, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, time_str)
		}
		values[i] = value
	}
	seconds := values[0]*3600 + values[1]*60 + values[2]
	if seconds > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedTime, time_str)
	}
	return int32(seconds), nil
}

// FormatTime is the inverse of ParseTime.
func FormatTime(seconds int32) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
