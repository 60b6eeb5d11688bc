// Package ui defines the user-interface capability set consumed by the alarm
// engine and the shell, and a console implementation over io streams.
package ui
