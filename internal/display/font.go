package display

import (
	"fmt"
	"sync"

	"github.com/spf13/pflag"
)

type Font string

const (
	FontSerif Font = "serif"
	FontSans  Font = "sans"
	FontMono  Font = "mono"
)

var (
	_        pflag.Value = (*Font)(nil)
	allFonts             = []Font{FontSerif, FontSans, FontMono}
)

func (f *Font) Set(val string) error {
	for _, font := range allFonts {
		if val == string(font) {
			*f = font
			return nil
		}
	}
	return fmt.Errorf("invalid font: %s", val)
}

func (f Font) String() string {
	return string(f)
}

func (f *Font) Type() string {
	return "Font"
}

// Label is the name shown in the font menu.
func (f Font) Label() (string, error) {
	switch f {
	case FontSerif:
		return "Serif", nil
	case FontSans:
		return "Sans Serif", nil
	case FontMono:
		return "Mono", nil
	default:
		return "", fmt.Errorf("invalid font: %s", f)
	}
}

// FontController holds the selected font. It has no effect on lookups.
type FontController struct {
	mu      sync.Mutex
	current Font
}

func NewFontController(font Font) (*FontController, error) {
	if _, err := font.Label(); err != nil {
		return nil, err
	}
	return &FontController{current: font}, nil
}

func (c *FontController) Current() Font {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *FontController) Set(font Font) error {
	if _, err := font.Label(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = font
	return nil
}
