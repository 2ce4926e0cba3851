package session

import "time"

const (
	// DefaultRestDuration is the length of the mandatory rest period.
	DefaultRestDuration = 5 * time.Minute
	// DefaultGraceDelay is how long the tired phase lasts before resting.
	DefaultGraceDelay = 3 * time.Second
	// DefaultMaxMinutes is the longest mission that can be started.
	DefaultMaxMinutes = 120
)

// Settings tunes the machine.
type Settings struct {
	RestDuration time.Duration
	GraceDelay   time.Duration
	MaxMinutes   int
	// OverrideActive makes Start abort a mission in progress instead of
	// rejecting the command.
	OverrideActive bool
}

// DefaultSettings returns the standard rest, grace and duration limits.
func DefaultSettings() Settings {
	return Settings{
		RestDuration:   DefaultRestDuration,
		GraceDelay:     DefaultGraceDelay,
		MaxMinutes:     DefaultMaxMinutes,
		OverrideActive: true,
	}
}

func (s Settings) normalise() Settings {
	def := DefaultSettings()

	if s.RestDuration < time.Second {
		s.RestDuration = def.RestDuration
	}

	if s.GraceDelay < 0 {
		s.GraceDelay = 0
	}

	if s.MaxMinutes < 1 {
		s.MaxMinutes = def.MaxMinutes
	}

	return s
}

func (s Settings) restSeconds() int {
	return int(s.RestDuration / time.Second)
}
