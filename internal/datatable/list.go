package datatable

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RunList executes one draw over an in-memory row list. Used for tables
// whose rows are computed rather than stored. Filtering is a plain
// case-insensitive substring match, the filter mini-language only applies
// to database-backed tables.
func (s *Spec) RunList(items []map[string]any, params Params, perms PermsFunc) map[string]any {
	filtered := make([]map[string]any, 0, len(items))

	for _, item := range items {
		if s.matchesSearches(item, params.Searches) {
			filtered = append(filtered, item)
		}
	}

	s.sortItems(filtered, params)

	total := len(filtered)
	page := paginate(filtered, params)

	return map[string]any{
		"draw":            params.Draw,
		"recordsTotal":    total,
		"recordsFiltered": total,
		"data":            s.renderRows(page, perms),
	}
}

func (s *Spec) matchesSearches(item map[string]any, searches map[string]string) bool {
	for _, field := range s.Fields {
		search, ok := searches[field.Data]
		if !ok {
			continue
		}

		if field.Boolean {
			want := search == "1" || strings.EqualFold(search, "true")
			if got, ok := item[field.Data].(bool); !ok || got != want {
				return false
			}
			continue
		}

		haystack := strings.ToLower(stringValue(item[field.Data]))
		if !strings.Contains(haystack, strings.ToLower(search)) {
			return false
		}
	}

	return true
}

func (s *Spec) sortItems(items []map[string]any, params Params) {
	index := params.OrderColumn - 1
	if index < 0 || index >= len(s.Fields) {
		index = len(s.Fields) - 1
	}

	key := s.Fields[index].Data
	descending := strings.EqualFold(params.OrderDir, "desc")

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i][key], items[j][key]

		// nil cells sort last regardless of direction
		if a == nil || b == nil {
			return a != nil && b == nil
		}

		less, equal := compareValues(a, b)
		if equal {
			return false
		}
		if descending {
			return !less
		}
		return less
	})
}

// compareValues orders two cell values, nil sorting after everything
func compareValues(a, b any) (less, equal bool) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return false, true
		}
		return b == nil, false
	}

	if na, ok := numeric(a); ok {
		if nb, ok := numeric(b); ok {
			return na < nb, na == nb
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Before(tb), ta.Equal(tb)
		}
	}

	sa := strings.ToLower(stringValue(a))
	sb := strings.ToLower(stringValue(b))

	return sa < sb, sa == sb
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func paginate(items []map[string]any, params Params) []map[string]any {
	if params.Length <= 0 {
		return items
	}

	start := params.Start
	if start < 0 || start >= len(items) {
		return nil
	}

	end := start + params.Length
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
