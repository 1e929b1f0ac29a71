// Package formatter renders a parsed parental guide as the multi-line text
// shown in the host application's stream list.
package formatter

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/family-night/models"
)

// UnknownIcon marks a severity outside None, Mild, Moderate and Severe.
const UnknownIcon = "❔"

var severityIcons = map[string]string{
	"None":     "⚪️",
	"Mild":     "🟢",
	"Moderate": "🟡",
	"Severe":   "🔴",
}

// Icon returns the glyph for a severity label.
func Icon(severity string) string {
	if icon, ok := severityIcons[severity]; ok {
		return icon
	}
	return UnknownIcon
}

// Format renders the rating on the first line, when present, followed by one
// "<icon> <category>: <severity>" line per category in stored order.
func Format(record models.GuidanceRecord) string {
	lines := make([]string, 0, record.Categories.Len()+1)

	if record.MPAARating != "" {
		lines = append(lines, record.MPAARating)
	}

	for _, c := range record.Categories {
		lines = append(lines, fmt.Sprintf("%s %s: %s", Icon(c.Severity), c.Name, c.Severity))
	}

	return strings.Join(lines, "\n")
}
