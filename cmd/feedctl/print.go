package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/SergeyParamoshkin/cardfeed/internal/feed"
)

type printer struct {
	out     io.Writer
	noColor bool
}

func newPrinter(out io.Writer, noColor bool) *printer {
	return &printer{out: out, noColor: noColor}
}

func (p *printer) card(c feed.Card) {
	a := c.Article

	title := color.New(color.Bold)
	meta := color.New(color.Faint)
	if p.noColor {
		title.DisableColor()
		meta.DisableColor()
	}

	title.Fprintln(p.out, a.Title)
	if a.Description != "" {
		fmt.Fprintln(p.out, "  "+a.Description)
	}
	meta.Fprintf(p.out, "  %s · %d views · %d likes · %s\n",
		a.Author, a.Views, c.Like.Count, a.CreatedAt.Format("2006-01-02 15:04"))
}

func (p *printer) placeholder(text string) {
	c := color.New(color.FgYellow)
	if p.noColor {
		c.DisableColor()
	}
	c.Fprintln(p.out, text)
}
