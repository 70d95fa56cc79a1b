package datatable

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Column search values support a small filter language on columns that opt
// in: "!" matches empty cells, "*" non-empty cells, "[a,b]" and "[lo-hi]"
// match a set of exact values, anything else is a glob with * and ?
// wildcards, anchored and case-insensitive. A leading "!" negates.

type filterKind int

const (
	filterEmpty filterKind = iota
	filterNonEmpty
	filterSet
	filterGlob
)

type filter struct {
	kind    filterKind
	negate  bool
	values  []string
	pattern string
}

func parseFilter(search string) filter {
	switch search {
	case "!":
		return filter{kind: filterEmpty}
	case "*":
		return filter{kind: filterNonEmpty}
	}

	var f filter

	if strings.HasPrefix(search, "!") {
		f.negate = true
		search = search[1:]
	}

	if strings.HasPrefix(search, "[") && strings.HasSuffix(search, "]") {
		f.kind = filterSet
		f.values = parseSet(search[1 : len(search)-1])
		return f
	}

	f.kind = filterGlob
	f.pattern = likePattern(search)

	return f
}

// parseSet splits a bracket expression into its members. A single "lo-hi"
// member with integer bounds expands to the full range.
func parseSet(body string) []string {
	members := strings.Split(body, ",")

	for i := range members {
		members[i] = strings.TrimSpace(members[i])
	}

	if len(members) == 1 {
		if lo, hi, ok := parseRange(members[0]); ok {
			expanded := make([]string, 0, hi-lo+1)
			for n := lo; n <= hi; n++ {
				expanded = append(expanded, strconv.Itoa(n))
			}
			return expanded
		}
	}

	return members
}

func parseRange(member string) (int, int, bool) {
	dash := strings.Index(member, "-")
	if dash <= 0 {
		return 0, 0, false
	}

	lo, err := strconv.Atoi(strings.TrimSpace(member[:dash]))
	if err != nil {
		return 0, 0, false
	}

	hi, err := strconv.Atoi(strings.TrimSpace(member[dash+1:]))
	if err != nil || hi < lo {
		return 0, 0, false
	}

	return lo, hi, true
}

// likePattern converts a glob into an anchored LIKE pattern. LIKE wildcards
// in the input are escaped so only * and ? act as wildcards.
func likePattern(glob string) string {
	var b strings.Builder

	for _, r := range glob {
		switch r {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%', '_', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	return strings.ToLower(b.String())
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// textExpr casts a column to text with NULL folded to the empty string, so
// the filter language sees one uniform value space.
func textExpr(column string) string {
	return fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '')", column)
}

// applySearch narrows the query by one column search value
func applySearch(q *gorm.DB, field *Field, search string) *gorm.DB {
	if field.Boolean {
		return q.Where(field.Column+" = ?", search == "1" || strings.EqualFold(search, "true"))
	}

	if !field.Regex {
		term := "%" + escapeLike(strings.ToLower(search)) + "%"
		return q.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, textExpr(field.Column)), term)
	}

	expr := textExpr(field.Column)
	f := parseFilter(search)

	switch f.kind {
	case filterEmpty:
		return q.Where(fmt.Sprintf("TRIM(%s) = ''", expr))
	case filterNonEmpty:
		return q.Where(fmt.Sprintf("TRIM(%s) <> ''", expr))
	case filterSet:
		if f.negate {
			return q.Where(expr+" NOT IN ?", f.values)
		}
		return q.Where(expr+" IN ?", f.values)
	default:
		clause := fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, expr)
		if f.negate {
			clause = fmt.Sprintf(`LOWER(%s) NOT LIKE ? ESCAPE '\'`, expr)
		}
		return q.Where(clause, f.pattern)
	}
}
