package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/at-ishikawa/lexicon/internal/dictionary"
	"github.com/at-ishikawa/lexicon/internal/display"
	"github.com/at-ishikawa/lexicon/internal/search"
	"github.com/fatih/color"
)

const clearScreen = "\033[H\033[2J"

type palette struct {
	heading *color.Color
	accent  *color.Color
	muted   *color.Color
	body    *color.Color
	alert   *color.Color
}

// Renderer writes words and search states to a terminal.
type Renderer struct {
	mu    sync.Mutex
	out   io.Writer
	theme *display.ThemeController
	font  *display.FontController
}

func NewRenderer(out io.Writer, theme *display.ThemeController, font *display.FontController) *Renderer {
	return &Renderer{
		out:   out,
		theme: theme,
		font:  font,
	}
}

func (r *Renderer) palette() (palette, error) {
	var bodyAttrs []color.Attribute
	switch font := r.font.Current(); font {
	case display.FontSerif:
		bodyAttrs = []color.Attribute{color.Italic}
	case display.FontSans:
		bodyAttrs = []color.Attribute{}
	case display.FontMono:
		bodyAttrs = []color.Attribute{color.Faint}
	default:
		return palette{}, fmt.Errorf("invalid font: %s", font)
	}

	switch theme := r.theme.Current(); theme {
	case display.ThemeLight:
		return palette{
			heading: color.New(color.Bold, color.FgBlack),
			accent:  color.New(color.FgMagenta),
			muted:   color.New(color.FgHiBlack),
			body:    color.New(append([]color.Attribute{color.FgBlack}, bodyAttrs...)...),
			alert:   color.New(color.FgRed),
		}, nil
	case display.ThemeDark:
		return palette{
			heading: color.New(color.Bold, color.FgHiWhite),
			accent:  color.New(color.FgHiMagenta),
			muted:   color.New(color.FgWhite),
			body:    color.New(append([]color.Attribute{color.FgHiWhite}, bodyAttrs...)...),
			alert:   color.New(color.FgHiRed),
		}, nil
	default:
		return palette{}, fmt.Errorf("invalid theme: %s", theme)
	}
}

// RenderWord prints a word. Synonyms are numbered across meanings, starting at 1.
func (r *Renderer) RenderWord(word dictionary.Word) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renderWord(word)
}

func (r *Renderer) renderWord(word dictionary.Word) error {
	p, err := r.palette()
	if err != nil {
		return err
	}

	_, _ = p.heading.Fprintln(r.out, word.Value)
	if word.Phonetic != "" {
		_, _ = p.accent.Fprintln(r.out, word.Phonetic)
	}
	if word.HasAudio() {
		_, _ = p.muted.Fprintf(r.out, "Play: %s\n", *word.Audio)
	}

	synonymIndex := 1
	for _, meaning := range word.Meanings {
		fmt.Fprintln(r.out)
		_, _ = p.heading.Fprintln(r.out, meaning.PartOfSpeech)
		_, _ = p.muted.Fprintln(r.out, "Meaning")
		for _, definition := range meaning.Definitions {
			_, _ = p.body.Fprintf(r.out, "  • %s\n", definition.Value)
			if definition.Example != nil {
				_, _ = p.muted.Fprintf(r.out, "    %q\n", *definition.Example)
			}
		}

		if len(meaning.Synonyms) > 0 {
			labels := make([]string, 0, len(meaning.Synonyms))
			for _, synonym := range meaning.Synonyms {
				labels = append(labels, fmt.Sprintf("[%d] %s", synonymIndex, synonym))
				synonymIndex++
			}
			_, _ = p.muted.Fprint(r.out, "Synonyms ")
			_, _ = p.accent.Fprintln(r.out, strings.Join(labels, ", "))
		}
	}

	if len(word.SourceURLs) > 0 {
		fmt.Fprintln(r.out)
		_, _ = p.muted.Fprintln(r.out, "Source")
		for _, sourceURL := range word.SourceURLs {
			_, _ = p.body.Fprintf(r.out, "  %s\n", sourceURL)
		}
	}
	return nil
}

// RenderSnapshot prints the view for a controller state.
func (r *Renderer) RenderSnapshot(snapshot search.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.palette()
	if err != nil {
		return err
	}

	if snapshot.Invalid {
		_, _ = p.alert.Fprintln(r.out, "Whoops, can't be empty...")
		return nil
	}

	switch snapshot.Status {
	case search.StatusIdle:
		return nil
	case search.StatusSearching:
		_, _ = p.muted.Fprintf(r.out, "Searching for %q...\n", snapshot.Query)
		return nil
	case search.StatusFound:
		if snapshot.Word == nil {
			return fmt.Errorf("found state without a word for %q", snapshot.Query)
		}
		return r.renderWord(*snapshot.Word)
	case search.StatusNotFound:
		_, _ = p.heading.Fprintln(r.out, "No Definitions Found")
		_, _ = p.muted.Fprintf(r.out, "Sorry, we couldn't find definitions for %q. Try another word.\n", snapshot.Query)
		return nil
	case search.StatusFailed:
		_, _ = p.alert.Fprintf(r.out, "Something went wrong: %v\n", snapshot.Err)
		return nil
	default:
		return fmt.Errorf("unknown search status: %s", snapshot.Status)
	}
}

// ScrollTop clears the terminal so the next word is shown from the top.
func (r *Renderer) ScrollTop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if color.NoColor {
		return
	}
	fmt.Fprint(r.out, clearScreen)
}
