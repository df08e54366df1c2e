package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/cardfeed/client"
	"github.com/SergeyParamoshkin/cardfeed/internal/feed"
)

type rootOptions struct {
	addr     string
	diagAddr string
	timeout time.Duration
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "feedctl",
		Short: "Read and publish cardfeed articles",
		Long: `feedctl talks to a running cardfeed server.

Example usage:
  feedctl list                       # newest first
  feedctl list --query cocina        # live search, as in the browser
  feedctl post --title "Hi" --views 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addr := os.Getenv("FEED_ADDR")
	if addr == "" {
		addr = "http://localhost:3000"
	}

	cmd.PersistentFlags().StringVar(&opts.addr, "addr", addr, "server base URL")
	cmd.PersistentFlags().StringVar(&opts.diagAddr, "diag-addr", os.Getenv("FEED_DIAG_URL"), "diag server base URL (defaults to --addr)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newListCmd(opts), newPostCmd(opts), newHealthCmd(opts))

	return cmd
}

func (o *rootOptions) client() *client.Client {
	return &client.Client{
		Client:   http.Client{Timeout: o.timeout},
		Addr:     o.addr,
		DiagAddr: o.diagAddr,
	}
}

func (o *rootOptions) syncer() *client.Syncer {
	return client.NewSyncer(o.client(), feed.NewView())
}
