package service

import (
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pdf"
)

// The details export walks the same sections as the edit dialog, so a
// printed record reads like the form the investigator filled in.

type detailField struct {
	name  string
	label string
}

type detailSection struct {
	legend string
	fields []detailField
}

var fakeShopSections = []detailSection{
	{"General", []detailField{
		{"url", "URL"},
		{"is_fake", "Fake shop"},
		{"imprint", "Imprint"},
	}},
	{"Search", []detailField{
		{"search_term", "Search term"},
		{"suspected_fraud_search", "Suspected fraud based on search"},
	}},
	{"Price comparison", []detailField{
		{"product_name", "Product name"},
		{"product_url", "Product URL"},
		{"product_reason", "Reason for product choice"},
		{"price_comparison_geizhals_eu_url", "geizhals.eu comparison URL"},
		{"price_comparison_reason", "Price comparison result"},
		{"suspected_fraud_price_comparison", "Suspected fraud based on prices"},
	}},
	{"Payment methods", []detailField{
		{"terms_of_payment_url", "Terms of payment URL"},
		{"checkout_page_address_url", "Checkout address page URL"},
		{"checkout_page_payment_method_url", "Checkout payment page URL"},
		{"payment_method_assessment", "Payment method assessment"},
		{"suspected_fraud_payment_method", "Suspected fraud based on payment methods"},
	}},
	{"Company databases", []detailField{
		{"database_search_term", "Database search term"},
		{"is_wko_checked", "WKO checked"},
		{"is_handelsregister_de_checked", "handelsregister.de checked"},
		{"is_justice_europe_checked", "e-justice.europa.eu checked"},
		{"database_review_result", "Database review result"},
		{"suspected_fraud_company_data", "Suspected fraud based on company data"},
	}},
	{"VAT", []detailField{
		{"vat", "VAT number"},
		{"vat_review_result", "VAT review result"},
		{"suspected_fraud_vat", "Suspected fraud based on VAT"},
	}},
	{"Domain", []detailField{
		{"domain_whois_url", "WHOIS URL"},
		{"domain_registration_check", "Registration data checked"},
		{"domain_registration_contradiction_url", "Registration contradiction URL"},
		{"domain_registrar", "Suspicious registrar"},
		{"suspected_fraud_domain", "Suspected fraud based on domain"},
		{"domain_is_fake", "Domain is fake"},
	}},
	{"Company names", []detailField{
		{"different_company_names", "Different company names found"},
	}},
	{"Website images", []detailField{
		{"can_not_copy_website_images", "Images cannot be copied"},
		{"copied_website_images", "Copied images found"},
		{"suspected_fraud_images", "Suspected fraud based on images"},
	}},
	{"Website text", []detailField{
		{"can_not_copy_website_text", "Text cannot be copied"},
		{"checked_website_text_url", "Checked text URL"},
		{"website_text_example", "Text example"},
		{"suspected_fraud_website_text", "Suspected fraud based on text"},
	}},
	{"Languages", []detailField{
		{"changing_languages_available", "Language switching available"},
	}},
	{"Terms and conditions", []detailField{
		{"terms_and_conditions_of_contract_url", "Terms and conditions URL"},
		{"very_short_terms", "Terms are very short"},
	}},
	{"Quality marks", []detailField{
		{"suspected_fraud_quality_mark_seal", "Suspected fraud based on seals"},
		{"quality_mark_url", "Quality mark URL"},
		{"is_guetezeichen_at_checked", "guetezeichen.at checked"},
		{"is_ehi_seal_checked", "EHI seal checked"},
		{"is_trusted_shops_checked", "Trusted Shops checked"},
		{"is_fictitious_quality_marks", "Fictitious quality marks found"},
		{"fictitious_quality_mark_url", "Fictitious quality mark URL"},
	}},
	{"Conclusion", []detailField{
		{"further_review_is_fake", "Further review confirms fake"},
	}},
}

var counterfeiterSections = []detailSection{
	{"General", []detailField{
		{"url", "URL"},
	}},
	{"Domain", []detailField{
		{"domain_is_plausible", "Domain is plausible"},
		{"has_discount", "Discounts offered"},
		{"no_ssl", "No SSL"},
		{"has_currency_selection", "Currency selection available"},
		{"domain_is_counterfeiter", "Domain indicates counterfeiter"},
	}},
	{"Products", []detailField{
		{"products_in_stock", "All products in stock"},
		{"no_product_description", "No product descriptions"},
	}},
	{"Contact and imprint", []detailField{
		{"contact_url", "Contact URL"},
		{"has_contact_mail", "Contact mail available"},
		{"has_no_imprint", "No imprint"},
		{"terms_and_conditions_of_contract_url", "Terms and conditions URL"},
		{"has_no_terms_and_conditions", "No terms and conditions"},
		{"imprint", "Imprint"},
		{"imprint_is_counterfeiter", "Imprint indicates counterfeiter"},
	}},
	{"Language", []detailField{
		{"switching_language", "Language switching available"},
		{"language_is_counterfeiter", "Language indicates counterfeiter"},
	}},
}

// evidence labels and anchors by wire key, shared with the edit dialogs
var evidenceLabels = map[string]string{
	"search_result_urls":    "Search results",
	"company_name_urls":     "Company name URLs",
	"website_image_urls":    "Copied image URLs",
	"website_text_urls":     "Copied text URLs",
	"language_example_urls": "Language example URLs",
	"product_example_urls":  "Product example URLs",
	"language_urls":         "Language URLs",
}

// BuildFakeShopDocument assembles the details export of a fake-shop record
func BuildFakeShopDocument(record *model.FakeShopRecord) *pdf.Document {
	evidence := map[string][]string{
		"search_result_urls":    urlItems(len(record.SearchResults), func(i int) *string { return record.SearchResults[i].ResultURL }),
		"company_name_urls":     urlItems(len(record.CompanyNames), func(i int) *string { return record.CompanyNames[i].CompanyNameURL }),
		"website_image_urls":    urlItems(len(record.WebsiteImages), func(i int) *string { return record.WebsiteImages[i].ImageURL }),
		"website_text_urls":     urlItems(len(record.WebsiteTexts), func(i int) *string { return record.WebsiteTexts[i].WebsiteTextURL }),
		"language_example_urls": urlItems(len(record.LanguageExamples), func(i int) *string { return record.LanguageExamples[i].LanguageExampleURL }),
	}

	return buildDocument(
		record.DisplayName(),
		"Fake shop record",
		record.CreatedAt,
		fakeShopSections,
		fakeShopEvidence,
		datatable.NewStructRow(record),
		evidence,
	)
}

// BuildCounterfeiterDocument assembles the details export of a
// counterfeiter record.
func BuildCounterfeiterDocument(record *model.CounterfeiterRecord) *pdf.Document {
	evidence := map[string][]string{
		"product_example_urls": urlItems(len(record.ProductExamples), func(i int) *string { return record.ProductExamples[i].ProductExampleURL }),
		"language_urls":        urlItems(len(record.LanguageURLs), func(i int) *string { return record.LanguageURLs[i].LanguageURL }),
	}

	return buildDocument(
		record.DisplayName(),
		"Counterfeiter record",
		record.CreatedAt,
		counterfeiterSections,
		counterfeiterEvidence,
		datatable.NewStructRow(record),
		evidence,
	)
}

func buildDocument(
	title, subtitle string,
	createdAt time.Time,
	sections []detailSection,
	evidenceSets []EvidenceSet,
	row datatable.Row,
	evidence map[string][]string,
) *pdf.Document {
	anchors := map[string]EvidenceSet{}
	for _, set := range evidenceSets {
		anchors[set.After] = set
	}

	doc := &pdf.Document{
		Title:     title,
		Subtitle:  subtitle,
		CreatedAt: createdAt,
	}

	for _, section := range sections {
		var rows []pdf.Row

		for _, field := range section.fields {
			value, _ := row.Resolve(field.name)
			rows = append(rows, pdf.Row{
				Label: field.label,
				Value: pdf.FormatValue(value),
			})

			// splice the evidence set anchored after this field
			if set, ok := anchors[field.name]; ok {
				rows = append(rows, pdf.Row{
					Label: evidenceLabels[set.Name],
					Items: evidence[set.Name],
				})
			}
		}

		doc.Sections = append(doc.Sections, pdf.Section{
			Legend: section.legend,
			Rows:   rows,
		})
	}

	return doc
}

func urlItems(n int, get func(int) *string) []string {
	items := make([]string, 0, n)

	for i := 0; i < n; i++ {
		if u := get(i); u != nil && *u != "" {
			items = append(items, *u)
		}
	}

	return items
}
