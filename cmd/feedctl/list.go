package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/cardfeed/internal/feed"
)

const (
	emptyPlaceholder     = "Nothing to show right now."
	noResultsPlaceholder = "No results."
)

func newListCmd(root *rootOptions) *cobra.Command {
	var (
		query      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the feed, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			s := root.syncer()
			p := newPrinter(cmd.OutOrStdout(), root.noColor)

			if err := s.Load(ctx); err != nil {
				p.placeholder(emptyPlaceholder)

				return err
			}

			view := s.View()
			view.Search(query)

			if jsonOutput {
				return writeJSON(cmd, view.Visible())
			}

			if view.NoResults() {
				p.placeholder(noResultsPlaceholder)

				return nil
			}

			for _, c := range view.Visible() {
				p.card(c)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "only show articles whose title or description contains query")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func writeJSON(cmd *cobra.Command, cards []feed.Card) error {
	articles := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		articles = append(articles, c.Article)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(articles)
}
