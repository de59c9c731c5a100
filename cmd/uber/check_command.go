package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	"github.com/HootingYard/ubercoordinator/internal/index"
	"github.com/HootingYard/ubercoordinator/internal/ingest"
	"github.com/HootingYard/ubercoordinator/internal/render"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the index and report counts and orphan pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ix, err := index.LoadConfig(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "articles:   %d\n", ix.Len())
			for _, era := range content.Eras {
				fmt.Fprintf(out, "  %-12s %d\n", era.String()+":", len(ix.Articles(era)))
			}
			fmt.Fprintf(out, "shows:      %d\n", len(ix.Shows()))
			fmt.Fprintf(out, "narrations: %d\n", ix.NarrationCount())

			orphans, err := ingest.Orphans(cfg.TextDir(), ix.Articles(index.AnyEra))
			if err != nil {
				return fmt.Errorf("scan %s: %w", cfg.TextDir(), err)
			}
			fmt.Fprintf(out, "orphans:    %d\n", len(orphans))
			for _, o := range orphans {
				fmt.Fprintf(out, "  %s\n", o)
			}

			if cfg.Paths.ThemeDir != "" {
				if err := render.CheckThemeTemplates(cfg.Paths.ThemeDir); err != nil {
					fmt.Fprintf(out, "theme: %v (built-in template used)\n", err)
				}
			}
			return nil
		},
	}
}
