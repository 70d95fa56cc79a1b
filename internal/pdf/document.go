// Package pdf builds the printable details export of a verification
// record: a document of titled sections with label/value rows, rendered
// into a self-contained file the browser downloads.
package pdf

import (
	"fmt"
	"time"
)

// Row is one label/value line of a section. Items carries the evidence
// URLs attached to the line, if any.
type Row struct {
	Label string
	Value string
	Items []string
}

// Section is one titled group of rows
type Section struct {
	Legend string
	Rows   []Row
}

// Document is a complete details export
type Document struct {
	Title     string
	Subtitle  string
	CreatedAt time.Time
	Sections  []Section
}

// Filename derives the download name from the document title
func (d *Document) Filename() string {
	return fmt.Sprintf("%s.pdf", d.Title)
}

// FormatValue renders a resolved field value for the document. Booleans
// become yes/no, empty values a dash.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04")
	default:
		return fmt.Sprintf("%v", v)
	}
}
