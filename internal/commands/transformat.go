package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/andromoze/internal/config"
	"github.com/cleared-dev/andromoze/internal/logger"
	"github.com/cleared-dev/andromoze/internal/moze"
	"github.com/cleared-dev/andromoze/internal/transform"
)

func newTransformatCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transformat",
		Short: "Transformat Andromoney export file to MOZE import file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runTransformat(cmd.Context(), cfg)
		},
	}
}

func runTransformat(ctx context.Context, cfg *config.Config) error {
	log := logger.FromContext(ctx)

	recs, err := cfg.Parser().ParseFile(cfg.Files.Input)
	if err != nil {
		return err
	}
	log.Debug().Str("file", cfg.Files.Input).Int("records", len(recs)).Msg("loaded AndroMoney export")

	out, err := transform.Transform(recs, cfg.TransformOptions())
	if err != nil {
		return err
	}
	log.Debug().Int("rows", len(out)).Msg("transformed records")

	if verrs := moze.Validate(out); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	err = writeFile(cfg.Files.Output, func(w io.Writer) error {
		return moze.WriteRecords(w, out, cfg.Target.Labels)
	})
	if err != nil {
		return err
	}

	log.Info().Str("file", cfg.Files.Output).Int("rows", len(out)).Msg("wrote MOZE import")
	return nil
}

// writeFile writes to a temporary file next to path and renames it into
// place, so a failed run never leaves a partial file behind.
func writeFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := write(tmp); err != nil {
		return fail(fmt.Errorf("writing %s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		return fail(fmt.Errorf("closing %s: %w", path, err))
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fail(fmt.Errorf("setting permissions on %s: %w", path, err))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(fmt.Errorf("moving output into place: %w", err))
	}
	return nil
}
