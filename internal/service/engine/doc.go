// Package engine implements the alarm engine: the tick loop that compares the
// wall clock with the alarm time, the Waiting/Triggered/Dismissed state
// machine and the ownership of the playback handle.
//
// Run executes on its own goroutine. Stop is the only operation meant to be
// called from another goroutine while Run is active; configuration updates
// are swapped in atomically and observed on the next tick.
package engine
