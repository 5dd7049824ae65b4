package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v2"
)

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "Print forwarder face status.",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "xml",
			Usage: "print XML instead of text",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 10 * time.Second,
			Usage: "dataset retrieval `timeout`",
		},
	},
	Action: func(c *cli.Context) error {
		ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
		defer cancel()

		report := newReport(nil)
		if e := report.Collect(ctx, client); e != nil {
			return cli.Exit(e, exitRuntime)
		}

		format := report.FormatText
		if c.Bool("xml") {
			format = report.FormatXML
		}
		if e := format(c.App.Writer); e != nil {
			return cli.Exit(e, exitRuntime)
		}
		return nil
	},
}
