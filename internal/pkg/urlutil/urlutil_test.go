package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveProtocol(t *testing.T) {
	assert.Equal(t, "example.com", RemoveProtocol("http://example.com"))
	assert.Equal(t, "example.com", RemoveProtocol("https://example.com/"))
	assert.Equal(t, "example.com/shop", RemoveProtocol("HTTPS://Example.com/shop/"))
	assert.Equal(t, "example.com", RemoveProtocol("example.com"))
	assert.Equal(t, "ftp://example.com", RemoveProtocol("ftp://example.com"))
}

func TestSchemeVariants(t *testing.T) {
	httpURL, httpsURL := SchemeVariants("https://Example.com/")
	assert.Equal(t, "http://example.com", httpURL)
	assert.Equal(t, "https://example.com", httpsURL)
}
