package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/family-night/internal/guide"
	"github.com/dtnitsch/family-night/internal/serve"
	"github.com/urfave/cli/v2"
)

// newApp builds the CLI. Flags live on the root app only; subcommands read
// them through the context lineage.
func newApp() *cli.App {
	return &cli.App{
		Name:  "family-night",
		Usage: "Parental guide add-on: serves IMDb content ratings as stream entries",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.StringFlag{
				Name:  "addr",
				Value: serve.DefaultAddr,
				Usage: "Listen address",
			},
		},
		Action: serve.ServeAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the add-on HTTP server",
				Action: serve.ServeAction,
			},
			{
				Name:      "guide",
				Usage:     "Print the parental guide for a title",
				ArgsUsage: "<imdb id or url>",
				Action:    guide.GuideAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
