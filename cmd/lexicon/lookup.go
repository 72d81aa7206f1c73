package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/lexicon/internal/cli"
	"github.com/at-ishikawa/lexicon/internal/config"
	"github.com/at-ishikawa/lexicon/internal/dictionary"
	"github.com/at-ishikawa/lexicon/internal/display"
	"github.com/at-ishikawa/lexicon/internal/search"
	"github.com/at-ishikawa/lexicon/internal/server"
)

type Format string

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "Format"
}

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatText, FormatJSON, FormatYAML}
)

func newLookupCommand() *cobra.Command {
	var (
		format    = FormatText
		theme     display.Theme
		font      display.Font
		serverURL string
	)

	command := &cobra.Command{
		Use:   "lookup <term...>",
		Short: "Look up a word and print its definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			themeController, fontController, err := newDisplayControllers(cfg, theme, font)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return runLookup(
				cmd.Context(),
				newLookuper(cfg, serverURL),
				cli.NewRenderer(out, themeController, fontController),
				out,
				format,
				cfg.Lookup.Timeout,
				strings.Join(args, " "),
			)
		},
	}

	flags := command.Flags()
	flags.Var(&format, "format", fmt.Sprintf("output format. Possible values are %v", allFormats))
	flags.Var(&theme, "theme", "color theme, light or dark. Defaults to display.theme in the config")
	flags.Var(&font, "font", "font, serif, sans or mono. Defaults to display.font in the config")
	flags.StringVar(&serverURL, "server", "", "URL of a running lexicon server to look words up through")
	return command
}

// newLookuper reads the dictionary API directly unless a server URL is given.
func newLookuper(cfg *config.Config, serverURL string) dictionary.Lookuper {
	if serverURL != "" {
		return server.NewClient(http.DefaultClient, serverURL)
	}
	return newReader(cfg)
}

func runLookup(
	ctx context.Context,
	lookuper dictionary.Lookuper,
	renderer *cli.Renderer,
	out io.Writer,
	format Format,
	timeout time.Duration,
	term string,
) error {
	controller := search.NewController(lookuper, search.WithTimeout(timeout))
	if err := controller.Submit(ctx, term); err != nil {
		return fmt.Errorf("controller.Submit > %w", err)
	}
	controller.Wait()

	snapshot := controller.Snapshot()
	if snapshot.Status != search.StatusFound {
		if format == FormatText {
			if err := renderer.RenderSnapshot(snapshot); err != nil {
				return fmt.Errorf("renderer.RenderSnapshot > %w", err)
			}
		}
		return snapshot.Err
	}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snapshot.Word); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(snapshot.Word); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encoder.Close > %w", err)
		}
	default:
		if err := renderer.RenderWord(*snapshot.Word); err != nil {
			return fmt.Errorf("renderer.RenderWord > %w", err)
		}
	}
	return nil
}
