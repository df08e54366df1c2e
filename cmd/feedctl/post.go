package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/cardfeed/client"
	"github.com/SergeyParamoshkin/cardfeed/internal/feed"
)

func newPostCmd(root *rootOptions) *cobra.Command {
	var in client.CreateInput

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish an article",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			s := root.syncer()

			created, err := s.Submit(ctx, in)
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout(), root.noColor).card(feed.Card{
				Article: created,
				Like:    feed.Like{Count: created.Likes},
			})

			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "article title (at least 2 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "article description")
	cmd.Flags().StringVar(&in.Author, "author", "", "author name")
	cmd.Flags().Int64Var(&in.Views, "views", 0, "initial view count")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
