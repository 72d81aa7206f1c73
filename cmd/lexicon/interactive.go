package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lexicon/internal/cli"
	"github.com/at-ishikawa/lexicon/internal/display"
	"github.com/at-ishikawa/lexicon/internal/search"
)

func newInteractiveCommand() *cobra.Command {
	var (
		theme     display.Theme
		font      display.Font
		serverURL string
	)

	command := &cobra.Command{
		Use:   "interactive",
		Short: "Look up words one after another in an interactive session",
		Args:  cobra.NoArgs,
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
			renderer := cli.NewRenderer(out, themeController, fontController)
			controller := search.NewController(
				newLookuper(cfg, serverURL),
				search.WithTimeout(cfg.Lookup.Timeout),
				search.WithScrollTop(renderer.ScrollTop),
			)
			controller.Subscribe(func(snapshot search.Snapshot) {
				if err := renderer.RenderSnapshot(snapshot); err != nil {
					slog.Default().Error("failed to render", "query", snapshot.Query, "error", err)
				}
			})

			lookupCLI := cli.NewLookupCLI(controller, renderer, themeController, fontController, cmd.InOrStdin(), out)
			if err := cli.Run(cmd.Context(), lookupCLI); err != nil {
				return fmt.Errorf("cli.Run > %w", err)
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.Var(&theme, "theme", "initial color theme, light or dark. Defaults to display.theme in the config")
	flags.Var(&font, "font", "initial font, serif, sans or mono. Defaults to display.font in the config")
	flags.StringVar(&serverURL, "server", "", "URL of a running lexicon server to look words up through")
	return command
}
