package webclient

import (
	"testing"
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestRequestTimeoutPrefersExplicitOption(t *testing.T) {
	opts := &Options{Timeout: 3 * time.Second}

	assert.Equal(t, 3*time.Second, requestTimeout(opts))
}

func TestRequestTimeoutReadsConfiguredValue(t *testing.T) {
	cfg := config.Get()
	original := cfg.Outbound.TimeoutSeconds
	defer func() { cfg.Outbound.TimeoutSeconds = original }()

	cfg.Outbound.TimeoutSeconds = 25
	assert.Equal(t, 25*time.Second, requestTimeout(nil))

	cfg.Outbound.TimeoutSeconds = 0
	assert.Equal(t, defaultTimeout, requestTimeout(&Options{}))
}
