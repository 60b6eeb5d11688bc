// Package shell implements the interactive menu of the alarm clock.
//
// The Shell collects the alarm time and sound from the user, starts the
// engine on its own goroutine and waits for it before showing the menu again.
// Run wires the shell to the console, the speaker and the settings file.
package shell
