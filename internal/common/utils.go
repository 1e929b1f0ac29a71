package common

import (
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/urfave/cli/v2"
)

// NewLogger builds the JSON stderr logger shared by all commands.
// --quiet keeps only errors.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

var titleIDPattern = regexp.MustCompile(`\btt\d+\b`)

// SanitizeID cleans up a title identifier typed or pasted on the command line.
// Whitespace and surrounding quotes are removed, and a pasted IMDb URL is
// reduced to its tt-prefixed id.
func SanitizeID(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"'<>`)
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "http://") || strings.HasPrefix(cleaned, "https://") {
		parsed, err := url.Parse(cleaned)
		if err == nil {
			if id := titleIDPattern.FindString(parsed.Path); id != "" {
				return id
			}
		}
	}

	return cleaned
}
