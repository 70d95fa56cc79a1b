package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterTokens(t *testing.T) {
	assert.Equal(t, filterEmpty, parseFilter("!").kind)
	assert.Equal(t, filterNonEmpty, parseFilter("*").kind)

	f := parseFilter("[2,5]")
	assert.Equal(t, filterSet, f.kind)
	assert.False(t, f.negate)
	assert.Equal(t, []string{"2", "5"}, f.values)

	f = parseFilter("![2,5]")
	assert.Equal(t, filterSet, f.kind)
	assert.True(t, f.negate)

	f = parseFilter("shop*")
	assert.Equal(t, filterGlob, f.kind)
	assert.Equal(t, "shop%", f.pattern)

	f = parseFilter("!shop?")
	assert.True(t, f.negate)
	assert.Equal(t, "shop_", f.pattern)
}

func TestParseSetExpandsRanges(t *testing.T) {
	assert.Equal(t, []string{"2", "3", "4", "5"}, parseSet("2-5"))
	assert.Equal(t, []string{"7"}, parseSet("7-7"))

	// only a lone integer range expands
	assert.Equal(t, []string{"a-c"}, parseSet("a-c"))
	assert.Equal(t, []string{"1-3", "5"}, parseSet("1-3,5"))
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "100\\%", likePattern("100%"))
	assert.Equal(t, "a\\_b%", likePattern("a_b*"))
	assert.Equal(t, "x_y", likePattern("x?y"))
	assert.Equal(t, "shop", likePattern("Shop"))
}
