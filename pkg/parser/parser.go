package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/family-night/models"
	"github.com/go-shiori/go-readability"
)

// Selectors for the IMDb parental guide layout. When IMDb changes its markup
// these stop matching and ParseGuidance returns an empty record.
const (
	metadataItemSelector = ".ipc-metadata-list__item"
	richTextSelector     = ".ipc-html-content-inner-div"
	ratingItemSelector   = `[data-testid="rating-item"]`
	labelSelector        = ".ipc-metadata-list-item__label"
)

type Parser struct{}

// ParseGuidance extracts the MPAA rating and the per-category severities from
// a parental guide page. Missing structure yields empty fields, never an error.
func (p *Parser) ParseGuidance(html string) models.GuidanceRecord {
	record := models.GuidanceRecord{Categories: models.Categories{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record
	}

	record.MPAARating = strings.TrimSpace(
		doc.Find(metadataItemSelector).First().Find(richTextSelector).Text(),
	)

	doc.Find(ratingItemSelector).Each(func(i int, s *goquery.Selection) {
		category := strings.TrimSpace(s.Find(labelSelector).Text())
		category = strings.TrimSpace(strings.TrimSuffix(category, ":"))
		rating := strings.TrimSpace(s.Find(richTextSelector).Text())

		record.Categories.Set(category, rating)
	})

	return record
}

// PageTitle uses go-readability to find the title of the page at rawURL.
// It returns "" when the URL or the markup cannot be read.
func (p *Parser) PageTitle(rawURL, html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return ""
	}
	return normalizeText(article.Title)
}

// normalizeText collapses runs of whitespace into single spaces.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
