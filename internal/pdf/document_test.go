package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-", FormatValue(nil))
	assert.Equal(t, "-", FormatValue(""))
	assert.Equal(t, "Yes", FormatValue(true))
	assert.Equal(t, "No", FormatValue(false))
	assert.Equal(t, "https://shop.example", FormatValue("https://shop.example"))
	assert.Equal(t, "42", FormatValue(42))

	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-14 09:30", FormatValue(created))
}

func TestFilename(t *testing.T) {
	doc := &Document{Title: "shop.example"}
	assert.Equal(t, "shop.example.pdf", doc.Filename())
}

func TestHTMLRendererEscapesValues(t *testing.T) {
	doc := &Document{
		Title:     "shop.example",
		Subtitle:  "Fake shop",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Sections: []Section{
			{Legend: "Search", Rows: []Row{
				{Label: "Search term", Value: `<script>alert("x")</script>`},
				{Label: "Search results", Value: "-", Items: []string{"https://result.example/1"}},
			}},
		},
	}

	body, contentType, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)

	assert.Equal(t, "text/html; charset=utf-8", contentType)
	assert.Contains(t, string(body), "&lt;script&gt;")
	assert.Contains(t, string(body), "<li>https://result.example/1</li>")
	assert.Contains(t, string(body), "2026-03-14 09:30")
	assert.NotContains(t, string(body), `<script>alert`)
}
