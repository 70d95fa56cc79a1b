package service

import "github.com/mal2-project/fake-shop-detection-database/internal/forms"

// Validation is the outcome of validating one dialog submission. It feeds
// the ajax envelope: errors block the save, requirements tell the frontend
// which conditional fields to mark.
type Validation struct {
	Errors       map[string][]forms.FieldError `json:"errors"`
	Requirements map[string]bool               `json:"requirements"`
}

// OK reports whether the submission can be saved
func (v *Validation) OK() bool {
	return len(v.Errors) == 0
}

func (v *Validation) addError(field string, err forms.FieldError) {
	if v.Errors == nil {
		v.Errors = map[string][]forms.FieldError{}
	}
	v.Errors[field] = append(v.Errors[field], err)
}

// EvidenceSet describes one evidence row collection of a record form: its
// wire key, the form field it is anchored after, and the row limits.
type EvidenceSet struct {
	Name   string
	After  string
	Limits forms.SetLimits
}
