// Package forms implements the validation layer behind the add and edit
// dialogs: conditional requirement rules between form fields and the
// evidence row sets attached to verification records.
package forms

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Operator compares a submitted field value against a rule value
type Operator string

const (
	OpGT  Operator = ">"
	OpLT  Operator = "<"
	OpGTE Operator = ">="
	OpLTE Operator = "<="
	OpEQ  Operator = "=="
	OpIn  Operator = "in"
)

const CodeRequired = "required"

// FieldError is one validation error on one field
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Requirement is the consequence of an active rule for one target field
type Requirement struct {
	Field    string
	Required bool
}

// Rule makes target fields required while a condition on a controlling
// field holds. While the condition does not hold, hidden targets are
// force-cleared so stale values never survive a change of mind.
type Rule struct {
	Field    string
	Operator Operator
	Value    any
	Then     []Requirement
}

// Values holds the submitted form data by wire name
type Values map[string]any

// Result is the outcome of evaluating all rules against one submission.
// Required is reported back to the frontend so it can mark the fields,
// Cleared lists hidden targets whose values must be dropped before saving.
type Result struct {
	Required map[string]bool
	Errors   map[string][]FieldError
	Cleared  []string
}

// Evaluate runs every rule against the submitted values. It never mutates
// its inputs, callers apply Cleared and merge Errors themselves.
func Evaluate(rules []Rule, values Values, hidden map[string]bool) Result {
	result := Result{
		Required: map[string]bool{},
		Errors:   map[string][]FieldError{},
	}

	for _, rule := range rules {
		active := compare(values[rule.Field], rule.Operator, rule.Value)

		for _, req := range rule.Then {
			if active && req.Required {
				result.Required[req.Field] = true

				if isEmpty(values[req.Field]) {
					result.Errors[req.Field] = append(result.Errors[req.Field], FieldError{
						Code:    CodeRequired,
						Message: "This field is required.",
					})
				}

				continue
			}

			if active {
				// an active rule lifting the requirement wins over earlier
				// rules, only non-required errors survive on the target
				result.Required[req.Field] = false
				result.Errors[req.Field] = WithoutRequired(result.Errors[req.Field])
				if len(result.Errors[req.Field]) == 0 {
					delete(result.Errors, req.Field)
				}

				continue
			}

			if !result.Required[req.Field] {
				result.Required[req.Field] = false
			}

			if hidden[req.Field] && !isEmpty(values[req.Field]) {
				result.Cleared = append(result.Cleared, req.Field)
			}
		}
	}

	return result
}

// WithoutRequired strips required errors from a field's error list, for
// fields a rule explicitly marks as not required. Other error codes stay.
func WithoutRequired(errors []FieldError) []FieldError {
	kept := errors[:0:0]

	for _, e := range errors {
		if e.Code != CodeRequired {
			kept = append(kept, e)
		}
	}

	return kept
}

func compare(value any, op Operator, target any) bool {
	if value == nil {
		return false
	}

	// rules may omit the operator: membership for list values, equality
	// for everything else
	if op == "" {
		if reflect.ValueOf(target).Kind() == reflect.Slice {
			op = OpIn
		} else {
			op = OpEQ
		}
	}

	switch op {
	case OpIn:
		return containsValue(target, value)
	case OpEQ:
		return equalValues(value, target)
	case OpGT, OpLT, OpGTE, OpLTE:
		a, okA := toFloat(value)
		b, okB := toFloat(target)
		if !okA || !okB {
			return false
		}

		switch op {
		case OpGT:
			return a > b
		case OpLT:
			return a < b
		case OpGTE:
			return a >= b
		default:
			return a <= b
		}
	}

	return false
}

func containsValue(list any, value any) bool {
	v := reflect.ValueOf(list)
	if v.Kind() != reflect.Slice {
		return false
	}

	for i := 0; i < v.Len(); i++ {
		if equalValues(value, v.Index(i).Interface()) {
			return true
		}
	}

	return false
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}

	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return ba == bb
		}
	}

	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// toFloat coerces numbers and numeric strings, so selects that submit ids
// as strings still compare against numeric rule values.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
