package alarm

import "path/filepath"

// Configuration is the alarm the engine waits for.
type Configuration struct {
	// TargetTime is the time of day the alarm fires at, compared to the minute.
	TargetTime TimeOfDay
	// TargetDisplay is the cached "7:30 AM" rendering of TargetTime.
	TargetDisplay string
	// SoundReference is the path to the WAV asset played on repeat.
	SoundReference string
}

// NewConfiguration returns a configuration with an unset target time.
func NewConfiguration(soundReference string) *Configuration {
	return &Configuration{
		TargetDisplay:  TimeOfDay{}.String(),
		SoundReference: soundReference,
	}
}

// Armed reports whether the target time is set, so the engine may start.
func (c *Configuration) Armed() bool {
	return c != nil && c.TargetTime.IsSet()
}

// SoundName returns the file name of the sound asset for menu display.
func (c *Configuration) SoundName() string {
	if c == nil || c.SoundReference == "" {
		return ""
	}

	return filepath.Base(c.SoundReference)
}

// WithTargetTime returns a copy with a new target time and display string.
func (c *Configuration) WithTargetTime(t TimeOfDay) *Configuration {
	cloned := c.Clone()
	cloned.TargetTime = t
	cloned.TargetDisplay = t.String()

	return cloned
}

// WithSound returns a copy with a new sound reference.
func (c *Configuration) WithSound(reference string) *Configuration {
	cloned := c.Clone()
	cloned.SoundReference = reference

	return cloned
}

// Clone returns a copy to avoid leaking internal references.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return NewConfiguration("")
	}

	cloned := *c

	return &cloned
}
