package service

import (
	"testing"

	"github.com/mal2-project/fake-shop-detection-database/internal/forms"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestValidateFakeShopRequiresURL(t *testing.T) {
	sub := &FakeShopSubmission{}

	validation := ValidateFakeShop(sub)

	assert.False(t, validation.OK())
	require.Len(t, validation.Errors["url"], 1)
	assert.Equal(t, forms.CodeRequired, validation.Errors["url"][0].Code)
}

func TestValidateFakeShopFlagRequiresDetails(t *testing.T) {
	sub := &FakeShopSubmission{
		Record: model.FakeShopRecord{
			URL:                  "https://shop.example",
			SuspectedFraudSearch: true,
		},
	}

	validation := ValidateFakeShop(sub)

	assert.False(t, validation.OK())
	require.Len(t, validation.Errors["search_term"], 1)
	assert.Equal(t, forms.CodeRequired, validation.Errors["search_term"][0].Code)
	assert.True(t, validation.Requirements["search_term"])
}

func TestValidateFakeShopFilledFlagPasses(t *testing.T) {
	sub := &FakeShopSubmission{
		Record: model.FakeShopRecord{
			URL:                  "https://shop.example",
			SuspectedFraudSearch: true,
			SearchTerm:           str("cheap sneakers"),
		},
		SearchResultURLs: []string{
			"https://result.example/1",
			"https://result.example/2",
		},
	}

	validation := ValidateFakeShop(sub)

	assert.True(t, validation.OK())
	assert.True(t, validation.Requirements["search_term"])
}

func TestValidateFakeShopClearsInactiveHiddenFields(t *testing.T) {
	sub := &FakeShopSubmission{
		Record: model.FakeShopRecord{
			URL:        "https://shop.example",
			SearchTerm: str("leftover from an earlier edit"),
		},
		SearchResultURLs: []string{
			"https://result.example/1",
			"https://result.example/2",
		},
	}

	validation := ValidateFakeShop(sub)

	assert.True(t, validation.OK())
	assert.Nil(t, sub.Record.SearchTerm)
}

func TestValidateFakeShopEvidenceMinimum(t *testing.T) {
	sub := &FakeShopSubmission{
		Record: model.FakeShopRecord{
			URL:                  "https://shop.example",
			SuspectedFraudSearch: true,
			SearchTerm:           str("cheap sneakers"),
		},
		SearchResultURLs: []string{"https://result.example/1"},
	}

	validation := ValidateFakeShop(sub)

	assert.False(t, validation.OK())
	require.Len(t, validation.Errors["search_result_urls"], 1)
	assert.Equal(t, "min_rows", validation.Errors["search_result_urls"][0].Code)
}

func TestValidateFakeShopMultipleSections(t *testing.T) {
	sub := &FakeShopSubmission{
		Record: model.FakeShopRecord{
			URL:                           "https://shop.example",
			SuspectedFraudPriceComparison: true,
			ProductName:                   str("Sneaker X"),
			SuspectedFraudVAT:             true,
		},
	}

	validation := ValidateFakeShop(sub)

	assert.False(t, validation.OK())
	assert.Empty(t, validation.Errors["product_name"])
	assert.Len(t, validation.Errors["product_url"], 1)
	assert.Len(t, validation.Errors["price_comparison_reason"], 1)
	assert.Len(t, validation.Errors["vat_review_result"], 1)
}

func TestValidateCounterfeiterTermsRule(t *testing.T) {
	// The terms URL is required while the shop claims to have terms
	sub := &CounterfeiterSubmission{
		Record: model.CounterfeiterRecord{URL: "https://brand.example"},
	}

	validation := ValidateCounterfeiter(sub)

	assert.False(t, validation.OK())
	require.Len(t, validation.Errors["terms_and_conditions_of_contract_url"], 1)

	sub = &CounterfeiterSubmission{
		Record: model.CounterfeiterRecord{
			URL:                     "https://brand.example",
			HasNoTermsAndConditions: true,
		},
		ProductExampleURLs: []string{
			"https://brand.example/product/1",
			"https://brand.example/product/2",
		},
	}

	validation = ValidateCounterfeiter(sub)
	assert.True(t, validation.OK())
}

func TestValidateCounterfeiterContactRule(t *testing.T) {
	sub := &CounterfeiterSubmission{
		Record: model.CounterfeiterRecord{
			URL:                     "https://brand.example",
			HasNoTermsAndConditions: true,
			HasContactMail:          true,
		},
		ProductExampleURLs: []string{
			"https://brand.example/product/1",
			"https://brand.example/product/2",
		},
	}

	validation := ValidateCounterfeiter(sub)

	assert.False(t, validation.OK())
	assert.Len(t, validation.Errors["contact_url"], 1)

	sub.Record.ContactURL = str("https://brand.example/contact")

	validation = ValidateCounterfeiter(sub)
	assert.True(t, validation.OK())
}

func TestValidateCounterfeiterEvidenceMinimum(t *testing.T) {
	sub := &CounterfeiterSubmission{
		Record: model.CounterfeiterRecord{
			URL:                     "https://brand.example",
			HasNoTermsAndConditions: true,
		},
		ProductExampleURLs: []string{"https://brand.example/product/1"},
	}

	validation := ValidateCounterfeiter(sub)

	assert.False(t, validation.OK())
	require.Len(t, validation.Errors["product_example_urls"], 1)
	assert.Equal(t, "min_rows", validation.Errors["product_example_urls"][0].Code)
}

func TestHiddenTargetsCoverAllRuleTargets(t *testing.T) {
	hidden := hiddenTargets(fakeShopRules)

	assert.True(t, hidden["search_term"])
	assert.True(t, hidden["vat_review_result"])
	assert.False(t, hidden["suspected_fraud_search"])
}
