package config

import "github.com/ayoisaiah/guardian/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration: %v",
	}

	errUnknownSound = &apperr.Error{
		Message: "%s sound not found: %s",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v, got %v",
	}

	errInvalidMinutes = &apperr.Error{
		Message: "%s must be between %d and %d minutes, got %d",
	}

	errInvalidPort = &apperr.Error{
		Message: "stats port must be between 0 and 65535, got %d",
	}

	errInvalidFormat = &apperr.Error{
		Message: "unknown report format %q (must be table, json, or yaml)",
	}
)
