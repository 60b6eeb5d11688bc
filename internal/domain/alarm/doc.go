// Package alarm contains core domain types for the alarm clock.
//
// It defines TimeOfDay (a wall-clock time without a date) and Configuration
// (the target time and sound asset) with helpers to parse and render times in
// the 12-hour format shown to the user.
package alarm
