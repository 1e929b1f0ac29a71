// Package models defines the data structures shared by the scraper and the add-on server.
package models

// GuidanceRecord is the parsed content of a parental guide page.
type GuidanceRecord struct {
	MPAARating string     `json:"mpaaRating"`
	Title      string     `json:"title,omitempty"` // page title, filled by readability when available
	Categories Categories `json:"categories"`
}

// Category is one rating item: a content category and its severity label.
type Category struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

// Categories keeps rating items in the order they first appeared on the page.
type Categories []Category

// Set stores severity under name. A name seen before keeps its position and
// only has its severity replaced.
func (c *Categories) Set(name, severity string) {
	for i := range *c {
		if (*c)[i].Name == name {
			(*c)[i].Severity = severity
			return
		}
	}
	*c = append(*c, Category{Name: name, Severity: severity})
}

// Get returns the severity stored for name.
func (c Categories) Get(name string) (string, bool) {
	for _, cat := range c {
		if cat.Name == name {
			return cat.Severity, true
		}
	}
	return "", false
}

func (c Categories) Len() int {
	return len(c)
}
