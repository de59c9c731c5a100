package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/HootingYard/ubercoordinator/internal/catalog"
	"github.com/HootingYard/ubercoordinator/internal/dates"
)

type lookupOptions struct {
	limit int
	id    string
	date  string
	show  string
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var opts lookupOptions
	cmd := &cobra.Command{
		Use:   "lookup [words...]",
		Short: "Find catalogued articles by title, id or date, or a show by id",
		Args: func(cmd *cobra.Command, args []string) error {
			modes := 0
			if len(args) > 0 {
				modes++
			}
			for _, s := range []string{opts.id, opts.date, opts.show} {
				if s != "" {
					modes++
				}
			}
			if modes != 1 {
				return errors.New("give title words or exactly one of --id, --date, --show")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := catalog.Open(catalog.OpenOptions{Path: cfg.Paths.CacheFile})
			if err != nil {
				return err
			}
			defer st.Close()

			if _, err := st.Rebuilt(); err != nil {
				return fmt.Errorf("catalog %s is empty; run `uber build` first", cfg.Paths.CacheFile)
			}

			out := cmd.OutOrStdout()
			switch {
			case opts.id != "":
				e, err := st.GetArticle(opts.id)
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("no article %q", opts.id)
				}
				if err != nil {
					return err
				}
				printEntries(out, []catalog.Entry{e})
				return nil
			case opts.date != "":
				day, err := time.ParseInLocation(time.DateOnly, opts.date, time.UTC)
				if err != nil {
					return fmt.Errorf("--date: want YYYY-MM-DD, got %q", opts.date)
				}
				entries, err := st.ArticlesOn(day)
				if err != nil {
					return err
				}
				printEntries(out, entries)
				return nil
			case opts.show != "":
				sh, err := st.GetShow(opts.show)
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("no show %q", opts.show)
				}
				if err != nil {
					return err
				}
				printShow(out, sh)
				return nil
			}

			entries, err := st.LookupTitles(strings.Join(args, " "), opts.limit)
			if err != nil {
				return err
			}
			printEntries(out, entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Maximum number of title matches")
	cmd.Flags().StringVar(&opts.id, "id", "", "Show the article with this id")
	cmd.Flags().StringVar(&opts.date, "date", "", "List the articles of one day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.show, "show", "", "Show a broadcast and the articles read in it")
	return cmd
}

func printEntries(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no matches")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %s", e.ID, dates.BriefDate(e.Date), e.Title)
		if len(e.Shows) > 0 {
			line += "  [" + strings.Join(e.Shows, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}

func printShow(w io.Writer, sh catalog.ShowEntry) {
	fmt.Fprintf(w, "%s  %s  %s\n", sh.ID, dates.BriefDate(sh.Date), sh.Title)
	fmt.Fprintf(w, "  %s\n", sh.MP3URL)
	for _, id := range sh.Articles {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
