package guide

import (
	"fmt"
	"io"

	"github.com/dtnitsch/family-night/internal/common"
	"github.com/dtnitsch/family-night/internal/server"
	"github.com/dtnitsch/family-night/models"
	"github.com/dtnitsch/family-night/pkg/fetcher"
	"github.com/dtnitsch/family-night/pkg/formatter"
	"github.com/urfave/cli/v2"
)

// GuideAction prints the formatted parental guide for one title.
func GuideAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: a title id is required, e.g. family-night guide tt0111161", 1)
	}

	logger := common.NewLogger(c)
	id := common.SanitizeID(c.Args().First())

	pipeline := server.NewPipeline(fetcher.NewFetcher(logger))
	pipeline.Titles = true

	record, ok := pipeline.Guide(c.Context, id)
	if !ok {
		return cli.Exit(fmt.Sprintf("no parental guide data for %s", id), 1)
	}

	return writeGuide(c.App.Writer, id, record)
}

func writeGuide(w io.Writer, id string, record models.GuidanceRecord) error {
	if record.Title != "" {
		if _, err := fmt.Fprintln(w, record.Title); err != nil {
			return err
		}
	}

	text := formatter.Format(record)
	if text == "" {
		text = "(no ratings found)"
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", text, fetcher.GuideURL(id))
	return err
}
