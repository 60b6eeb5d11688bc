// Package sound plays the alarm asset on repeat and rings the alert cue.
//
// SpeakerPlayer decodes WAV files with beep and loops them on the system
// speaker until the returned Playback is stopped. TerminalBell is the
// redundant one-shot cue that does not depend on the asset or the device.
package sound
