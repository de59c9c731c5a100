package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HootingYard/ubercoordinator/internal/build"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the website",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if force {
				cfg.Build.Force = true
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			b := &build.Builder{Cfg: cfg, Logger: logger}
			res, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d articles, %d shows, %d narrations; %d files written, %d unchanged\n",
				res.Articles, res.Shows, res.Narrations, res.Written, res.Unchanged)
			for _, w := range res.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s: %s\n", w.Path, w.Msg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite every page even if unchanged")
	return cmd
}
