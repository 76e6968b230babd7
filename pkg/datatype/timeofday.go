package datatype

import (
	"fmt"
	"time"
)

// SentinelDate is the fixed calendar date attached to time values when they
// are serialized. Only the time-of-day carries meaning; the date exists so
// the stored form remains a parseable datetime string.
var SentinelDate = time.Date(1969, time.December, 31, 0, 0, 0, 0, time.UTC)

// TimeOfDay is a clock time with no calendar date. It is the canonical
// in-memory representation for the "time" datatype.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayOf extracts the clock time from t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// String formats the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// OnSentinelDate anchors the time-of-day to SentinelDate.
func (t TimeOfDay) OnSentinelDate() time.Time {
	return time.Date(SentinelDate.Year(), SentinelDate.Month(), SentinelDate.Day(),
		t.Hour, t.Minute, t.Second, 0, time.UTC)
}
