// Package datatable renders declarative table specs into the JSON payloads
// the DataTables frontend consumes. A Spec describes the columns, joins,
// filters and row actions of one table, the engine runs a fixed pipeline
// over it: filter, order, paginate, render.
package datatable

import (
	"fmt"
	"html/template"
	"strings"
)

// PermsFunc reports whether the current user holds all listed permissions.
// An empty list always grants.
type PermsFunc func(permissions []string) bool

// Field is one data column of a table. Data is the wire key, Column the SQL
// expression it selects and filters on. Dotted wire keys (a__b) address
// joined relations, the join itself is declared on the Spec.
type Field struct {
	Data    string
	Column  string
	Label   string
	Classes []string
	Hidden  bool

	// Boolean columns filter on 0/1 equality instead of substring match
	Boolean bool

	// Regex enables the filter mini-language (!, *, [a,b], [lo-hi], globs)
	Regex bool

	// Output reads the rendered value from another wire key
	Output string

	Template           *template.Template
	ResponsivePriority int
}

// Action is a per-row link column (edit, delete, details, ...). Href is a
// format string receiving the value resolved through IDPath.
type Action struct {
	Name        string
	Href        string
	IDPath      string
	Permissions []string
	Label       string
	Icon        string
	Danger      bool
	Template    *template.Template
}

// Annotation builds a concatenated pseudo-column. When LinkedJoin names the
// primary key of an optional relation, rows without the relation render as
// an empty string instead of a comma salad.
type Annotation struct {
	LinkedJoin string
	Components []string
}

// Column returns the SQL expression of the annotation
func (a Annotation) Column() string {
	concat := strings.Join(a.Components, " || ")

	if a.LinkedJoin == "" {
		return concat
	}

	return fmt.Sprintf("CASE WHEN %s IS NULL THEN '' ELSE %s END", a.LinkedJoin, concat)
}

// Spec declares one data table
type Spec struct {
	Table string

	// PK is the SQL expression used as the ordering tiebreak
	PK string

	// RowID is the wire key used for DT_RowId, row index when empty
	RowID string

	Fields  []Field
	Joins   []string
	Actions []Action
	Add     *Action

	// DefaultOrder is the DataTables order option, e.g. [[1, "asc"]]
	DefaultOrder string
	PageLength   int

	// Options are additional data-* attributes for the table element
	Options map[string]string
}

func (s *Spec) pk() string {
	if s.PK == "" {
		return "id"
	}
	return s.PK
}

func (s *Spec) field(data string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Data == data {
			return &s.Fields[i]
		}
	}
	return nil
}

// cssClass derives the column class from the wire key, matching the
// frontend's expectation (a__b_c becomes "a-b-c").
func cssClass(data string) string {
	return strings.ReplaceAll(strings.ReplaceAll(data, "__", "-"), "_", "-")
}

// Columns returns the column manifest: the leading icon column, all data
// columns and one column per permitted action.
func (s *Spec) Columns(perms PermsFunc) []map[string]any {
	columns := []map[string]any{
		{
			"class":              "icon-table",
			"data":               "add",
			"responsivePriority": 0,
		},
	}

	for _, field := range s.Fields {
		classes := cssClass(field.Data)
		if len(field.Classes) > 0 {
			classes = classes + " " + strings.Join(field.Classes, " ")
		}

		column := map[string]any{
			"class": classes,
			"data":  field.Data,
			"hide":  field.Hidden,
		}

		if field.ResponsivePriority != 0 {
			column["responsivePriority"] = field.ResponsivePriority
		}

		columns = append(columns, column)
	}

	for _, action := range s.Actions {
		if !perms(action.Permissions) {
			continue
		}

		columns = append(columns, map[string]any{
			"class": "icon-table",
			"data":  action.Name,
		})
	}

	return columns
}

const (
	domHeader = `<"align-self-start col-12 col-sm-auto d-flex d-sm-block flex-column mb-1"l><"align-self-start col-12 col-sm-auto mb-2 ml-auto"p>`
	domFooter = `<"align-self-start col-12 col-sm-auto d-flex d-sm-block flex-column mb-1"l><"align-self-start col-12 col-sm-auto ml-auto"p><"col-12 mb-2"i>`
	domTable  = `<"col-12 mb-1"Bt>`
)

// TableOptions returns the data-* attribute map for the table element
func (s *Spec) TableOptions() map[string]string {
	order := s.DefaultOrder
	if order == "" {
		order = `[[1, "asc"]]`
	}

	pageLength := s.PageLength
	if pageLength == 0 {
		pageLength = 50
	}

	options := map[string]string{
		"data-export-csv":  "true",
		"data-dom":         fmt.Sprintf(`<"align-items-center sm-gutters row"%s%s%s>`, domHeader, domTable, domFooter),
		"data-order":       order,
		"data-page-length": fmt.Sprintf("%d", pageLength),
		"data-responsive":  "true",
	}

	for key, value := range s.Options {
		options["data-"+key] = value
	}

	return options
}

// Manifest bundles everything the table page needs to set itself up
func (s *Spec) Manifest(perms PermsFunc) map[string]any {
	labels := map[string]string{}
	for _, field := range s.Fields {
		if field.Label != "" {
			labels[field.Data] = field.Label
		}
	}

	manifest := map[string]any{
		"table":        s.Table,
		"columns":      s.Columns(perms),
		"options":      s.TableOptions(),
		"field_labels": labels,
	}

	if s.Add != nil && perms(s.Add.Permissions) {
		manifest["add"] = map[string]any{
			"href": s.Add.Href,
			"text": s.Add.Label,
		}
	}

	return manifest
}
