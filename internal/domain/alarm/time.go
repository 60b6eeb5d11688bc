package alarm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutHourMinute renders a time as "7:30 AM".
	LayoutHourMinute = "3:04 PM"
	// LayoutHourMinuteSecond renders a time as "7:30:45 AM".
	LayoutHourMinuteSecond = "3:04:05 PM"
)

// ErrInvalidTime is returned when a time of day cannot be parsed or built.
var ErrInvalidTime = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time without a date or location.
// The zero value is "not set" and never compares equal to a parsed time.
type TimeOfDay struct {
	// hour is in the 0..23 range.
	hour int
	// minute is in the 0..59 range.
	minute int
	// second is in the 0..59 range.
	second int
	// set distinguishes midnight from the unset zero value.
	set bool
}

// NewTimeOfDay builds a TimeOfDay from 24-hour clock components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("%02d:%02d:%02d: %w", hour, minute, second, ErrInvalidTime)
	}

	return TimeOfDay{
		hour:   hour,
		minute: minute,
		second: second,
		set:    true,
	}, nil
}

// FromTime takes the clock part of t.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay{
		hour:   t.Hour(),
		minute: t.Minute(),
		second: t.Second(),
		set:    true,
	}
}

// ParseTimeOfDay parses user input in the 12-hour format ("7:30 AM").
// Seconds ("7:30:15 pm") and lower-case suffixes are accepted as well.
func ParseTimeOfDay(input string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	if normalized == "" {
		return TimeOfDay{}, fmt.Errorf("empty input: %w", ErrInvalidTime)
	}

	for _, layout := range []string{LayoutHourMinute, LayoutHourMinuteSecond} {
		parsed, err := time.Parse(layout, normalized)
		if err == nil {
			return FromTime(parsed), nil
		}
	}

	return TimeOfDay{}, fmt.Errorf("%q: %w", input, ErrInvalidTime)
}

// IsSet reports whether the value holds a real time.
func (t TimeOfDay) IsSet() bool {
	return t.set
}

// Hour returns the hour in 24-hour format.
func (t TimeOfDay) Hour() int {
	return t.hour
}

// Minute returns the minute.
func (t TimeOfDay) Minute() int {
	return t.minute
}

// Second returns the second.
func (t TimeOfDay) Second() int {
	return t.second
}

// TruncateToMinute drops the seconds.
func (t TimeOfDay) TruncateToMinute() TimeOfDay {
	t.second = 0

	return t
}

// SameMinute reports whether both values fall into the same minute.
// An unset value never matches.
func (t TimeOfDay) SameMinute(other TimeOfDay) bool {
	if !t.set || !other.set {
		return false
	}

	return t.TruncateToMinute() == other.TruncateToMinute()
}

// Format renders the value with a time.Format layout.
func (t TimeOfDay) Format(layout string) string {
	return time.Date(0, time.January, 1, t.hour, t.minute, t.second, 0, time.UTC).Format(layout)
}

// String renders "7:30 AM", or "Not Set" for the zero value.
func (t TimeOfDay) String() string {
	if !t.set {
		return "Not Set"
	}

	return t.Format(LayoutHourMinute)
}

// FormatClock renders a wall-clock instant as "7:30:45 AM" for the live display.
func FormatClock(now time.Time) string {
	return now.Format(LayoutHourMinuteSecond)
}
