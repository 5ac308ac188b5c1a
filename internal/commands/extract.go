package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/andromoze/internal/config"
	"github.com/cleared-dev/andromoze/internal/extract"
	"github.com/cleared-dev/andromoze/internal/logger"
)

func newExtractCommand(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the information that needs to be created manually in MOZE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runExtract(cmd.Context(), cmd.OutOrStdout(), cfg, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")

	return cmd
}

func runExtract(ctx context.Context, w io.Writer, cfg *config.Config, format string) error {
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown format %q: want text or yaml", format)
	}

	recs, err := cfg.Parser().ParseFile(cfg.Files.Input)
	if err != nil {
		return err
	}

	summary := extract.Extract(recs, cfg.Source.SystemCategory)
	logger.FromContext(ctx).Debug().
		Int("accounts", len(summary.Accounts)).
		Int("projects", len(summary.Projects)).
		Int("categories", len(summary.Categories)).
		Msg("extracted manual setup")

	if format == "yaml" {
		return extract.WriteYAML(w, summary)
	}
	return extract.Render(w, summary, cfg.Display.Locale)
}
