package datatable

import (
	"reflect"
	"strings"
	"unicode"
)

// Row resolves dotted wire paths (a__b) to cell values. Both the table
// engine and the PDF export walk records through this interface instead of
// hardcoding lookups.
type Row interface {
	Resolve(path string) (any, bool)
}

// MapRow resolves paths against a plain map, one level deep
type MapRow map[string]any

func (r MapRow) Resolve(path string) (any, bool) {
	value, ok := r[path]
	return value, ok
}

// StructRow resolves paths against a struct via reflection, matching each
// segment by json tag or by the snake-cased field name. Nil pointers along
// the path resolve to nil.
type StructRow struct {
	value any
}

func NewStructRow(value any) StructRow {
	return StructRow{value: value}
}

func (r StructRow) Resolve(path string) (any, bool) {
	current := reflect.ValueOf(r.value)

	for _, segment := range strings.Split(path, "__") {
		for current.Kind() == reflect.Pointer {
			if current.IsNil() {
				return nil, true
			}
			current = current.Elem()
		}

		if current.Kind() != reflect.Struct {
			return nil, false
		}

		field, ok := structField(current, segment)
		if !ok {
			return nil, false
		}

		current = field
	}

	for current.Kind() == reflect.Pointer {
		if current.IsNil() {
			return nil, true
		}
		current = current.Elem()
	}

	return current.Interface(), true
}

func structField(value reflect.Value, segment string) (reflect.Value, bool) {
	t := value.Type()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag == segment || snakeCase(f.Name) == segment {
			return value.Field(i), true
		}
	}

	return reflect.Value{}, false
}

func snakeCase(name string) string {
	var b strings.Builder

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
