// Package config defines the alarm clock settings and provides helpers to
// load, validate and save them in YAML format.
//
// The Config type holds the sound asset directory, the default alarm sound,
// the tick interval and the logging options.
package config
