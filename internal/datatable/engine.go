package datatable

import (
	"fmt"
	"html/template"
	"strings"

	"gorm.io/gorm"
)

var defaultActionTemplate = template.Must(template.New("action").Parse(
	`<a class="table-icon" href="{{.Href}}"{{if .Danger}} data-icon-color="danger"{{end}} data-modal-link title="{{.Label}}">{{.Icon}}</a>`))

// Run executes one draw against the database: apply joins, narrow by the
// column searches, count, order, paginate, then render the page into the
// DataTables response shape. recordsTotal mirrors the filtered count, the
// frontend shows the filtered size as the table size.
func (s *Spec) Run(q *gorm.DB, params Params, perms PermsFunc) (map[string]any, error) {
	for _, join := range s.Joins {
		q = q.Joins(join)
	}

	for _, field := range s.Fields {
		if search, ok := params.Searches[field.Data]; ok {
			q = applySearch(q, &field, search)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Distinct(s.pk()).Count(&total).Error; err != nil {
		return nil, err
	}

	q = q.Order(s.orderClause(params))

	if params.Length > 0 {
		q = q.Offset(params.Start).Limit(params.Length)
	}

	rows := []map[string]any{}
	if err := q.Select(s.selectClause()).Find(&rows).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"draw":            params.Draw,
		"recordsTotal":    total,
		"recordsFiltered": total,
		"data":            s.renderRows(rows, perms),
	}, nil
}

// orderClause resolves the requested column into an ORDER BY that sorts
// NULLs last in either direction and breaks ties on the primary key. The
// wire index counts the leading icon column, so data columns start at 1;
// anything out of range wraps to the last column.
func (s *Spec) orderClause(params Params) string {
	index := params.OrderColumn - 1
	if index < 0 || index >= len(s.Fields) {
		index = len(s.Fields) - 1
	}

	direction := "asc"
	if strings.EqualFold(params.OrderDir, "desc") {
		direction = "desc"
	}

	column := s.Fields[index].Column

	return fmt.Sprintf("(%s IS NULL), %s %s, %s", column, column, direction, s.pk())
}

// selectClause aliases every column to its wire key so scanned rows carry
// the keys the payload needs.
func (s *Spec) selectClause() string {
	selects := make([]string, 0, len(s.Fields)+1)
	seen := map[string]bool{}

	for _, field := range s.Fields {
		selects = append(selects, fmt.Sprintf(`%s AS "%s"`, field.Column, field.Data))
		seen[field.Data] = true
	}

	if s.RowID != "" && !seen[s.RowID] {
		selects = append(selects, fmt.Sprintf(`%s AS "%s"`, s.pk(), s.RowID))
	}

	return strings.Join(selects, ", ")
}

// renderRows turns scanned rows into payload rows: DT_RowId, the empty
// icon cell, one value per field and one HTML fragment per permitted
// action.
func (s *Spec) renderRows(rows []map[string]any, perms PermsFunc) []map[string]any {
	permitted := make([]Action, 0, len(s.Actions))
	for _, action := range s.Actions {
		if perms(action.Permissions) {
			permitted = append(permitted, action)
		}
	}

	data := make([]map[string]any, 0, len(rows))

	for i, row := range rows {
		rendered := map[string]any{
			"DT_RowId": s.rowID(row, i),
			"add":      "",
		}

		for _, field := range s.Fields {
			rendered[field.Data] = renderValue(field, row)
		}

		for _, action := range permitted {
			rendered[action.Name] = renderAction(action, row)
		}

		data = append(data, rendered)
	}

	return data
}

func (s *Spec) rowID(row map[string]any, index int) string {
	if s.RowID != "" {
		if value, ok := row[s.RowID]; ok && value != nil {
			return fmt.Sprintf("row-%v", value)
		}
	}

	return fmt.Sprintf("row-%d", index+1)
}

// renderValue resolves a field's display value. Empty cells render as a
// dash so the table never shows blanks.
func renderValue(field Field, row map[string]any) any {
	key := field.Data
	if field.Output != "" {
		key = field.Output
	}

	value := row[key]

	if field.Template != nil {
		var b strings.Builder
		if err := field.Template.Execute(&b, map[string]any{"Value": value, "Row": row}); err == nil {
			return b.String()
		}
	}

	if value == nil || value == "" {
		return "-"
	}

	return value
}

func renderAction(action Action, row map[string]any) string {
	idPath := action.IDPath
	if idPath == "" {
		idPath = "id"
	}

	href := action.Href
	if strings.Contains(href, "%v") {
		href = fmt.Sprintf(href, row[idPath])
	}

	tpl := action.Template
	if tpl == nil {
		tpl = defaultActionTemplate
	}

	var b strings.Builder

	err := tpl.Execute(&b, map[string]any{
		"Href":   href,
		"Label":  action.Label,
		"Icon":   template.HTML(action.Icon),
		"Danger": action.Danger,
		"Row":    row,
	})
	if err != nil {
		return ""
	}

	return b.String()
}
