package server

import (
	"context"

	"github.com/dtnitsch/family-night/models"
	"github.com/dtnitsch/family-night/pkg/fetcher"
	"github.com/dtnitsch/family-night/pkg/formatter"
	"github.com/dtnitsch/family-night/pkg/parser"
)

// GuideFetcher downloads a parental guide page. ok=false means no data.
type GuideFetcher interface {
	FetchGuide(ctx context.Context, id string) (html string, ok bool)
}

// Pipeline runs fetch, parse and format for one title, in that order.
type Pipeline struct {
	Fetcher GuideFetcher
	Parser  *parser.Parser

	// Titles enables page title extraction. The stream route leaves it off.
	Titles bool
}

// NewPipeline returns a Pipeline that fetches through f.
func NewPipeline(f GuideFetcher) *Pipeline {
	return &Pipeline{Fetcher: f, Parser: &parser.Parser{}}
}

// Guide returns the parsed guide for id and whether the fetch produced data.
// A failed fetch still parses, which yields an empty record.
func (p *Pipeline) Guide(ctx context.Context, id string) (models.GuidanceRecord, bool) {
	html, ok := p.Fetcher.FetchGuide(ctx, id)
	record := p.Parser.ParseGuidance(html)
	if ok && p.Titles {
		record.Title = p.Parser.PageTitle(fetcher.GuideURL(id), html)
	}
	return record, ok
}

// Describe returns the formatted guide text for id, "" when nothing was found.
func (p *Pipeline) Describe(ctx context.Context, id string) string {
	record, _ := p.Guide(ctx, id)
	return formatter.Format(record)
}
