package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server can reach its article store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			if err := root.client().Health(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")

			return nil
		},
	}
}
