package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rebeliceyang/lazymovies/internal/config"
	"github.com/rebeliceyang/lazymovies/internal/export"
	"github.com/rebeliceyang/lazymovies/internal/filter"
	"github.com/rebeliceyang/lazymovies/internal/logger"
	"github.com/rebeliceyang/lazymovies/internal/models"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	format string
	output string

	title         string
	year          string
	length        string
	directors     []string
	certification string
	rating        string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch the movie list, apply filters and write the result to a file",
		Example: `  lazymovies export --director "Luc Besson" --format csv -o besson.csv
  lazymovies export --title "The" --rating 4.5 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.setup()
			defer func() { _ = logger.Close() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return runExport(ctx, cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", "csv", "output format: csv or json")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: movies.<format> in export.dir)")
	flags.StringVar(&opts.title, "title", "", "title starts with")
	flags.StringVar(&opts.year, "year", "", "release year equals")
	flags.StringVar(&opts.length, "length", "", "running time equals")
	flags.StringArrayVar(&opts.directors, "director", nil, "director is one of (repeatable)")
	flags.StringVar(&opts.certification, "certification", "", "certification equals")
	flags.StringVar(&opts.rating, "rating", "", "rating equals (0-5)")

	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *exportOptions) error {
	f := export.Format(opts.format)
	if f != export.FormatCSV && f != export.FormatJSON {
		return fmt.Errorf("unsupported export format %q", opts.format)
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(cfg.Export.Dir, "movies."+string(f))
	}

	st, err := newStore(cfg)
	if err != nil {
		return err
	}
	// A failed fetch leaves the store empty and the export empty
	if err := st.Load(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "No Movies Found")
	}

	ratingMode, ok := filter.ParseMatchMode(cfg.Filter.RatingMode)
	if !ok {
		ratingMode = models.MatchEquals
	}
	engine := filter.NewEngine(filter.Options{IgnoreCase: cfg.Filter.IgnoreCase, RatingMode: ratingMode})

	// Only flags given on the command line constrain the result, so an
	// explicit empty --title "" is kept as a literal value
	values := []struct {
		flag   string
		column models.ColumnKey
		value  any
	}{
		{"title", models.ColumnTitle, opts.title},
		{"year", models.ColumnReleaseDate, opts.year},
		{"length", models.ColumnLength, opts.length},
		{"director", models.ColumnDirector, opts.directors},
		{"certification", models.ColumnCertification, opts.certification},
		{"rating", models.ColumnRating, opts.rating},
	}
	for _, v := range values {
		if !cmd.Flags().Changed(v.flag) {
			continue
		}
		if err := engine.SetFilterValue(v.column, v.value); err != nil {
			return err
		}
	}

	visible := engine.Evaluate(st.AllRecords())
	if err := export.Export(visible, f, output); err != nil {
		return err
	}

	logger.Infof("[export] wrote %d movies to %s", len(visible), output)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d movies to %s\n", len(visible), output)
	return nil
}
