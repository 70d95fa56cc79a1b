package forms

import (
	"reflect"
	"strings"
)

// ValuesOf flattens a struct's exported fields into Values keyed by json
// tag. Nil pointers map to nil so rules see absent values, nested structs
// and slices are skipped.
func ValuesOf(record any) Values {
	values := Values{}

	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return values
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return values
	}

	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}

		field := v.Field(i)

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				values[name] = nil
				continue
			}
			field = field.Elem()
		}

		switch field.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Map:
			continue
		}

		values[name] = field.Interface()
	}

	return values
}

// ClearFields zeroes the named fields on a struct, matching by json tag.
// Pointer fields become nil, value fields their zero value.
func ClearFields(record any, names []string) {
	if len(names) == 0 {
		return
	}

	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	clear := map[string]bool{}
	for _, name := range names {
		clear[name] = true
	}

	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if !clear[name] {
			continue
		}

		field := v.Field(i)
		if field.CanSet() {
			field.Set(reflect.Zero(field.Type()))
		}
	}
}
