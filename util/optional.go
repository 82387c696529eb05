package util

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value     T
	has_value bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{
		Value:     value,
		has_value: true,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.has_value
}

// Returns the value or the given default if unset.
func (self Optional[T]) ValueOr(def T) T {
	if self.has_value {
		return self.Value
	}
	return def
}

// UnmarshalText decodes a textual column value.
//
// Empty text yields None. Supported value types are string, int, int32,
// int64, float32 and float64; NaN floats are treated as missing.
func (self *Optional[T]) UnmarshalText(text []byte) error {
	*self = None[T]()
	s := strings.TrimSpace(string(text))
	if s == "" {
		return nil
	}
	switch v := any(&self.Value).(type) {
	case *string:
		*v = s
	case *int:
		num, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*v = num
	case *int32:
		num, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return err
		}
		*v = int32(num)
	case *int64:
		num, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*v = num
	case *float32:
		num, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		if math.IsNaN(num) {
			return nil
		}
		*v = float32(num)
	case *float64:
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		if math.IsNaN(num) {
			return nil
		}
		*v = num
	default:
		return errors.New("unsupported optional value type")
	}
	self.has_value = true
	return nil
}
