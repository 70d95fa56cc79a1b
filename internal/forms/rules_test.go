package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRequiresTargetWhenConditionHolds(t *testing.T) {
	rules := []Rule{
		{
			Field:    "is_fictitious_quality_marks",
			Operator: OpEQ,
			Value:    true,
			Then:     []Requirement{{Field: "fictitious_quality_mark_url", Required: true}},
		},
	}

	result := Evaluate(rules, Values{
		"is_fictitious_quality_marks": true,
		"fictitious_quality_mark_url": "",
	}, nil)

	assert.True(t, result.Required["fictitious_quality_mark_url"])
	require.Len(t, result.Errors["fictitious_quality_mark_url"], 1)
	assert.Equal(t, CodeRequired, result.Errors["fictitious_quality_mark_url"][0].Code)
}

func TestEvaluateNoErrorWhenTargetFilled(t *testing.T) {
	rules := []Rule{
		{
			Field:    "is_fictitious_quality_marks",
			Operator: OpEQ,
			Value:    true,
			Then:     []Requirement{{Field: "fictitious_quality_mark_url", Required: true}},
		},
	}

	result := Evaluate(rules, Values{
		"is_fictitious_quality_marks": true,
		"fictitious_quality_mark_url": "http://seal.example",
	}, nil)

	assert.True(t, result.Required["fictitious_quality_mark_url"])
	assert.Empty(t, result.Errors)
}

func TestEvaluateClearsHiddenTargetWhenInactive(t *testing.T) {
	rules := []Rule{
		{
			Field:    "is_fictitious_quality_marks",
			Operator: OpEQ,
			Value:    true,
			Then:     []Requirement{{Field: "fictitious_quality_mark_url", Required: true}},
		},
	}

	hidden := map[string]bool{"fictitious_quality_mark_url": true}

	result := Evaluate(rules, Values{
		"fictitious_quality_mark_url": "http://stale.example",
	}, hidden)

	assert.False(t, result.Required["fictitious_quality_mark_url"])
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"fictitious_quality_mark_url"}, result.Cleared)
}

func TestEvaluateVisibleTargetNotCleared(t *testing.T) {
	rules := []Rule{
		{
			Field:    "a",
			Operator: OpEQ,
			Value:    true,
			Then:     []Requirement{{Field: "b", Required: true}},
		},
	}

	result := Evaluate(rules, Values{"b": "kept"}, nil)

	assert.Empty(t, result.Cleared)
}

func TestEvaluateNumericCoercion(t *testing.T) {
	rules := []Rule{
		{
			Field:    "risk_score",
			Operator: OpGTE,
			Value:    4,
			Then:     []Requirement{{Field: "further_review_is_fake", Required: true}},
		},
	}

	// selects submit their values as strings
	result := Evaluate(rules, Values{"risk_score": "5"}, nil)
	assert.True(t, result.Required["further_review_is_fake"])

	result = Evaluate(rules, Values{"risk_score": "3"}, nil)
	assert.False(t, result.Required["further_review_is_fake"])
}

func TestEvaluateInOperator(t *testing.T) {
	rules := []Rule{
		{
			Field:    "website_type",
			Operator: OpIn,
			Value:    []any{1, 2},
			Then:     []Requirement{{Field: "url", Required: true}},
		},
	}

	result := Evaluate(rules, Values{"website_type": "2"}, nil)
	assert.True(t, result.Required["url"])

	result = Evaluate(rules, Values{"website_type": "3"}, nil)
	assert.False(t, result.Required["url"])
}

func TestEvaluateImplicitOperatorListValue(t *testing.T) {
	rules := []Rule{
		{
			Field: "website_type",
			Value: []any{1, 2},
			Then:  []Requirement{{Field: "url", Required: true}},
		},
	}

	result := Evaluate(rules, Values{"website_type": "2"}, nil)
	assert.True(t, result.Required["url"])

	result = Evaluate(rules, Values{"website_type": "3"}, nil)
	assert.False(t, result.Required["url"])
}

func TestEvaluateImplicitOperatorScalarValue(t *testing.T) {
	rules := []Rule{
		{
			Field: "suspected_fraud_search",
			Value: true,
			Then:  []Requirement{{Field: "search_term", Required: true}},
		},
	}

	result := Evaluate(rules, Values{"suspected_fraud_search": true}, nil)
	assert.True(t, result.Required["search_term"])

	result = Evaluate(rules, Values{"suspected_fraud_search": false}, nil)
	assert.False(t, result.Required["search_term"])
}

func TestEvaluateNotRequiredStripsRequiredErrors(t *testing.T) {
	rules := []Rule{
		{Field: "a", Operator: OpEQ, Value: true, Then: []Requirement{{Field: "c", Required: true}}},
		{Field: "b", Operator: OpEQ, Value: true, Then: []Requirement{{Field: "c", Required: false}}},
	}

	result := Evaluate(rules, Values{"a": true, "b": true}, nil)

	assert.False(t, result.Required["c"])
	assert.Empty(t, result.Errors)

	// without the lifting rule the requirement stands
	result = Evaluate(rules, Values{"a": true, "b": false}, nil)

	assert.True(t, result.Required["c"])
	require.Len(t, result.Errors["c"], 1)
}

func TestEvaluateRequiredWinsOverLaterRules(t *testing.T) {
	rules := []Rule{
		{Field: "a", Operator: OpEQ, Value: true, Then: []Requirement{{Field: "c", Required: true}}},
		{Field: "b", Operator: OpEQ, Value: true, Then: []Requirement{{Field: "c", Required: true}}},
	}

	result := Evaluate(rules, Values{"a": true, "c": "x"}, nil)

	assert.True(t, result.Required["c"])
}

func TestWithoutRequired(t *testing.T) {
	errors := []FieldError{
		{Code: CodeRequired, Message: "This field is required."},
		{Code: "invalid", Message: "Enter a valid URL."},
	}

	kept := WithoutRequired(errors)

	require.Len(t, kept, 1)
	assert.Equal(t, "invalid", kept[0].Code)
}

func TestCleanSetDropsEmptyRows(t *testing.T) {
	kept, errors := CleanSet([]string{"http://a.example", "", "  ", "http://b.example"}, SetLimits{Min: 2})

	assert.Empty(t, errors)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, kept)
}

func TestCleanSetRejectsDuplicates(t *testing.T) {
	kept, errors := CleanSet([]string{"http://a.example", "http://a.example"}, SetLimits{})

	assert.Equal(t, []string{"http://a.example"}, kept)
	require.Len(t, errors, 1)
	assert.Equal(t, "duplicate", errors[0].Code)
}

func TestCleanSetEnforcesMinimum(t *testing.T) {
	_, errors := CleanSet([]string{"http://a.example", ""}, SetLimits{Min: 2})

	require.Len(t, errors, 1)
	assert.Equal(t, "min_rows", errors[0].Code)
}

func TestCleanSetEnforcesMaximum(t *testing.T) {
	_, errors := CleanSet([]string{"a", "b", "c"}, SetLimits{Max: 2})

	require.Len(t, errors, 1)
	assert.Equal(t, "max_rows", errors[0].Code)
}
