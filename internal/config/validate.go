package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

var (
	minRestDuration = 1 * time.Second
	maxRestDuration = 60 * time.Minute

	maxGraceDelay = 1 * time.Minute

	// missions may never be longer than 12 hours
	maxMissionMinutes = 720

	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	soundExts = []string{".mp3", ".ogg", ".flac", ".wav"}

	reportFormats = []string{"table", "json", "yaml"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateMission(); err != nil {
		return err
	}

	if err := c.validateRest(); err != nil {
		return err
	}

	if c.Settings.StatsPort < 0 || c.Settings.StatsPort > 65535 {
		return errInvalidPort.Fmt(c.Settings.StatsPort)
	}

	if c.CLI.Format != "" && !slices.Contains(reportFormats, c.CLI.Format) {
		return errInvalidFormat.Fmt(c.CLI.Format)
	}

	return nil
}

func (c *Config) validateMission() error {
	m := c.Mission

	if m.MaxMinutes < 1 || m.MaxMinutes > maxMissionMinutes {
		return errInvalidMinutes.Fmt(
			"max mission length",
			1,
			maxMissionMinutes,
			m.MaxMinutes,
		)
	}

	if m.DefaultMinutes < 1 || m.DefaultMinutes > m.MaxMinutes {
		return errInvalidMinutes.Fmt(
			"default mission length",
			1,
			m.MaxMinutes,
			m.DefaultMinutes,
		)
	}

	if c.CLI.Minutes != 0 &&
		(c.CLI.Minutes < 1 || c.CLI.Minutes > m.MaxMinutes) {
		return errInvalidMinutes.Fmt(
			"mission length",
			1,
			m.MaxMinutes,
			c.CLI.Minutes,
		)
	}

	if m.GraceDelay < 0 || m.GraceDelay > maxGraceDelay {
		return errInvalidDuration.Fmt(
			"grace",
			time.Duration(0),
			maxGraceDelay,
			m.GraceDelay,
		)
	}

	return validateAppearance("mission", m.Message, m.Color, m.Sound)
}

func (c *Config) validateRest() error {
	r := c.Rest

	if r.Duration < minRestDuration || r.Duration > maxRestDuration {
		return errInvalidDuration.Fmt(
			"rest",
			minRestDuration,
			maxRestDuration,
			r.Duration,
		)
	}

	return validateAppearance("rest", r.Message, r.Color, r.Sound)
}

func validateAppearance(group, msg, color, sound string) error {
	if strings.TrimSpace(msg) == "" {
		return errEmptyMsg.Fmt(group)
	}

	if !hexColorRegex.MatchString(color) {
		return errInvalidColor.Fmt(group, color)
	}

	if sound != "" {
		return validateSound(group, sound)
	}

	return nil
}

func validateSound(group, sound string) error {
	ext := strings.ToLower(filepath.Ext(sound))
	if !slices.Contains(soundExts, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	_, err := os.Stat(SoundPath(sound))
	if errors.Is(err, os.ErrNotExist) {
		return errUnknownSound.Fmt(group, sound)
	}

	return nil
}
