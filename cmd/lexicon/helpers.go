package main

import (
	"fmt"
	"os"

	"github.com/at-ishikawa/lexicon/internal/config"
	"github.com/at-ishikawa/lexicon/internal/dictionary"
	"github.com/at-ishikawa/lexicon/internal/display"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg.Log.Level, verbose)
	return cfg, nil
}

func newReader(cfg *config.Config) *dictionary.Reader {
	return dictionary.NewReader(dictionary.Config{
		BaseURL: cfg.Lookup.BaseURL,
		Timeout: cfg.Lookup.Timeout,
	})
}

// resolveTheme returns the flag value when set, otherwise the configured preference.
// The system preference follows the terminal background reported in COLORFGBG.
func resolveTheme(flagValue display.Theme, configured string) (display.Theme, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configured == config.ThemeSystem {
		return display.ThemeFromColorFGBG(os.Getenv("COLORFGBG")), nil
	}
	var theme display.Theme
	if err := theme.Set(configured); err != nil {
		return "", fmt.Errorf("theme.Set > %w", err)
	}
	return theme, nil
}

func resolveFont(flagValue display.Font, configured string) (display.Font, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	var font display.Font
	if err := font.Set(configured); err != nil {
		return "", fmt.Errorf("font.Set > %w", err)
	}
	return font, nil
}

func newDisplayControllers(cfg *config.Config, themeFlag display.Theme, fontFlag display.Font) (*display.ThemeController, *display.FontController, error) {
	theme, err := resolveTheme(themeFlag, cfg.Display.Theme)
	if err != nil {
		return nil, nil, err
	}
	font, err := resolveFont(fontFlag, cfg.Display.Font)
	if err != nil {
		return nil, nil, err
	}

	themeController, err := display.NewThemeController(theme)
	if err != nil {
		return nil, nil, fmt.Errorf("display.NewThemeController > %w", err)
	}
	fontController, err := display.NewFontController(font)
	if err != nil {
		return nil, nil, fmt.Errorf("display.NewFontController > %w", err)
	}
	return themeController, fontController, nil
}
