// Package display holds the cosmetic selectors of the view: color theme and font.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var (
	_         pflag.Value = (*Theme)(nil)
	allThemes             = []Theme{ThemeLight, ThemeDark}
)

func (t *Theme) Set(val string) error {
	for _, theme := range allThemes {
		if val == string(theme) {
			*t = theme
			return nil
		}
	}
	return fmt.Errorf("invalid theme: %s", val)
}

func (t Theme) String() string {
	return string(t)
}

func (t *Theme) Type() string {
	return "Theme"
}

// Toggled returns the other theme.
func (t Theme) Toggled() (Theme, error) {
	switch t {
	case ThemeLight:
		return ThemeDark, nil
	case ThemeDark:
		return ThemeLight, nil
	default:
		return t, fmt.Errorf("invalid theme: %s", t)
	}
}

// ThemeFromColorFGBG derives the preferred theme from a COLORFGBG value
// such as "15;0" or "0;default;15". The last field is the background color index.
// Unknown or empty values prefer the light theme.
func ThemeFromColorFGBG(value string) Theme {
	fields := strings.Split(value, ";")
	background, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return ThemeLight
	}
	if background >= 0 && (background <= 6 || background == 8) {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeController holds the theme for the current session.
// The initial theme comes from the host preference and only changes on Toggle.
type ThemeController struct {
	mu      sync.Mutex
	current Theme
}

func NewThemeController(preferred Theme) (*ThemeController, error) {
	if _, err := preferred.Toggled(); err != nil {
		return nil, err
	}
	return &ThemeController{current: preferred}, nil
}

func (c *ThemeController) Current() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Toggle switches between light and dark and returns the new theme.
func (c *ThemeController) Toggle() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	// current is validated by NewThemeController
	c.current, _ = c.current.Toggled()
	return c.current
}
