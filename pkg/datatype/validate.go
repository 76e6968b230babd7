package datatype

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// validateString stringifies any input. Never fails.
func validateString(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case nil:
		return "", true
	default:
		return fmt.Sprint(v), true
	}
}

// toFloat converts the numeric Go representations, and numeric strings,
// to float64.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toInt64 converts the integer Go representations to int64 without going
// through float64.
func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

func validateNumber(raw any) (any, bool) {
	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

// validateInt accepts whole-number-valued input. Decimal representations
// such as 10.0 coerce to 10; a non-zero fractional part fails.
func validateInt(raw any) (any, bool) {
	if n, ok := toInt64(raw); ok {
		return n, true
	}
	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	if f != math.Trunc(f) {
		return nil, false
	}
	return int64(f), true
}

// validateBoolean normalizes to bool. Accepts actual booleans, the strings
// "true" and "false", and the numbers 1 and 0. Any other representation
// fails; in particular "yes", "1", and numbers other than 1 and 0 are
// rejected.
func validateBoolean(raw any) (any, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	}
	if f, ok := toFloat(raw); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return nil, false
}

// validateObject passes through non-array objects: maps, structs, and
// pointers to them. Slices and arrays are rejected.
func validateObject(raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return raw, true
	default:
		return nil, false
	}
}

// validateArray passes through slices and arrays of any element type.
func validateArray(raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	switch reflect.ValueOf(raw).Kind() {
	case reflect.Slice, reflect.Array:
		return raw, true
	default:
		return nil, false
	}
}

// Layout lists tried in order when parsing temporal strings.
var (
	datetimeLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	dateLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	timeLayouts = []string{
		"15:04:05",
		"15:04",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
)

// parseTemporal accepts a time.Time value directly or parses a string
// against the given layouts in order.
func parseTemporal(raw any, layouts []string) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range layouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// validateDate coerces to a calendar date; the time-of-day of the input is
// discarded.
func validateDate(raw any) (any, bool) {
	t, ok := parseTemporal(raw, dateLayouts)
	if !ok {
		return nil, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

func validateDatetime(raw any) (any, bool) {
	t, ok := parseTemporal(raw, datetimeLayouts)
	if !ok {
		return nil, false
	}
	return t, true
}

// validateTime coerces to a TimeOfDay; the calendar date of the input is
// discarded. Already-coerced TimeOfDay values pass through.
func validateTime(raw any) (any, bool) {
	if tod, ok := raw.(TimeOfDay); ok {
		return tod, true
	}
	t, ok := parseTemporal(raw, timeLayouts)
	if !ok {
		return nil, false
	}
	return TimeOfDayOf(t), true
}
