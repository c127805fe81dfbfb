package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rebeliceyang/lazymovies/internal/history"
	"github.com/rebeliceyang/lazymovies/internal/logger"
	"github.com/spf13/cobra"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the movies most recently opened in the detail view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.setup()
			defer func() { _ = logger.Close() }()

			h, err := history.NewStore(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer func() { _ = h.Close() }()

			entries, err := h.GetRecent(limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No movies viewed yet")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Viewed", "Title", "Year", "Director")
			for _, e := range entries {
				t.Row(e.ViewedAt.Local().Format("2006-01-02 15:04"), e.Title, e.ReleaseDate, e.Director)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
