package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// PromptOptions holds the user's responses to the first-run prompts.
type PromptOptions struct {
	UserName       string
	DefaultMinutes int
}

// WithPromptConfig returns an Option that asks for the player's name and
// preferred mission length. The prompt only runs before the config file
// has been created.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		DefaultMinutes: 25,
	}

	_ = pterm.DefaultBigText.
		WithLetters(putils.LettersFromString("GUARDIAN")).
		Render()

	_ = putils.BulletListFromString(`Follow the prompts below to set up Guardian for the first time.
Press ENTER to accept the defaults.
Edit the config file with 'guardian edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Placeholder("Guardian").
				Value(&opts.UserName),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default mission length").
				Options(
					huh.NewOption("15 minutes", 15),
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("45 minutes", 45),
					huh.NewOption("60 minutes", 60),
					huh.NewOption("90 minutes", 90),
				).
				Value(&opts.DefaultMinutes),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions stores the answers on the config. They become the
// defaults written to the new config file.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Mission.DefaultMinutes = opts.DefaultMinutes
	c.Profile.UserName = strings.TrimSpace(opts.UserName)
}
