package forms

import "fmt"

// SetLimits bounds the number of kept rows in an evidence set
type SetLimits struct {
	Min int
	Max int
}

// CleanSet validates one evidence row set. Empty rows are deletions and
// drop out silently, duplicates among the remaining rows are rejected, and
// the remaining count must stay within the limits. Returns the kept rows
// in submission order and the set-level errors.
func CleanSet(rows []string, limits SetLimits) ([]string, []FieldError) {
	var kept []string
	var errors []FieldError

	seen := map[string]bool{}

	for _, row := range rows {
		if isEmpty(row) {
			continue
		}

		if seen[row] {
			errors = append(errors, FieldError{
				Code:    "duplicate",
				Message: fmt.Sprintf("Duplicate entry: %s", row),
			})
			continue
		}

		seen[row] = true
		kept = append(kept, row)
	}

	if limits.Min > 0 && len(kept) < limits.Min {
		errors = append(errors, FieldError{
			Code:    "min_rows",
			Message: fmt.Sprintf("Please provide at least %d entries.", limits.Min),
		})
	}

	if limits.Max > 0 && len(kept) > limits.Max {
		errors = append(errors, FieldError{
			Code:    "max_rows",
			Message: fmt.Sprintf("Please provide at most %d entries.", limits.Max),
		})
	}

	return kept, errors
}
