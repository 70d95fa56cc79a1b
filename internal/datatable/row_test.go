package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolveRiskScore struct {
	ID        uint   `json:"id"`
	RiskScore string `json:"risk_score"`
}

type resolveWebsite struct {
	URL       string            `json:"url"`
	RiskScore *resolveRiskScore `json:"risk_score,omitempty"`
	ProductURL *string
}

func TestMapRowResolve(t *testing.T) {
	row := MapRow{"url": "http://shop.example"}

	value, ok := row.Resolve("url")
	require.True(t, ok)
	assert.Equal(t, "http://shop.example", value)

	_, ok = row.Resolve("missing")
	assert.False(t, ok)
}

func TestStructRowResolvesNestedPaths(t *testing.T) {
	website := resolveWebsite{
		URL:       "http://shop.example",
		RiskScore: &resolveRiskScore{ID: 4, RiskScore: "4"},
	}

	row := NewStructRow(&website)

	value, ok := row.Resolve("url")
	require.True(t, ok)
	assert.Equal(t, "http://shop.example", value)

	value, ok = row.Resolve("risk_score__risk_score")
	require.True(t, ok)
	assert.Equal(t, "4", value)

	_, ok = row.Resolve("risk_score__missing")
	assert.False(t, ok)
}

func TestStructRowNilPointersResolveToNil(t *testing.T) {
	row := NewStructRow(resolveWebsite{URL: "x"})

	value, ok := row.Resolve("risk_score__risk_score")
	require.True(t, ok)
	assert.Nil(t, value)

	value, ok = row.Resolve("product_url")
	require.True(t, ok)
	assert.Nil(t, value)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "product_url", snakeCase("ProductURL"))
	assert.Equal(t, "risk_score", snakeCase("RiskScore"))
	assert.Equal(t, "vat", snakeCase("VAT"))
	assert.Equal(t, "is_wko_checked", snakeCase("IsWkoChecked"))
}
