package datatype

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Storage layouts for the temporal datatypes.
const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// quote applies the escape and quoting options to a textual value. Escaping
// happens before the wrapping quotes are added.
func quote(s string, opts Options) string {
	if opts.Escape {
		s = strings.ReplaceAll(s, "'", "''")
	}
	if opts.UseQuotes {
		s = "'" + s + "'"
	}
	return s
}

func serializeString(v any, opts Options) string {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return quote(s, opts)
}

// serializeNumber renders without quoting regardless of options; numbers
// are not quoted literals.
func serializeNumber(v any, _ Options) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprint(v)
	}
}

// serializeInt always renders an integer literal, no decimal point.
func serializeInt(v any, _ Options) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatInt(int64(n), 10)
	default:
		return fmt.Sprint(v)
	}
}

func serializeBoolean(v any, _ Options) string {
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	return fmt.Sprint(v)
}

// serializeObject prefers the value's own string conversion, falling back
// to JSON encoding.
func serializeObject(v any, opts Options) string {
	if s, ok := v.(fmt.Stringer); ok {
		return quote(s.String(), opts)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return quote(fmt.Sprint(v), opts)
	}
	return quote(string(b), opts)
}

func serializeArray(v any, opts Options) string {
	b, err := json.Marshal(v)
	if err != nil {
		return quote(fmt.Sprint(v), opts)
	}
	return quote(string(b), opts)
}

func serializeDate(v any, opts Options) string {
	if t, ok := v.(time.Time); ok {
		return quote(t.Format(dateLayout), opts)
	}
	return quote(fmt.Sprint(v), opts)
}

func serializeDatetime(v any, opts Options) string {
	if t, ok := v.(time.Time); ok {
		return quote(t.Format(datetimeLayout), opts)
	}
	return quote(fmt.Sprint(v), opts)
}

// serializeTime anchors the time-of-day to the sentinel date so the stored
// form is a full datetime string.
func serializeTime(v any, opts Options) string {
	switch t := v.(type) {
	case TimeOfDay:
		return quote(t.OnSentinelDate().Format(datetimeLayout), opts)
	case time.Time:
		return quote(TimeOfDayOf(t).OnSentinelDate().Format(datetimeLayout), opts)
	default:
		return quote(fmt.Sprint(v), opts)
	}
}
