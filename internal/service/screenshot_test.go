package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestTakeScreenshotSkipsUnreachableSite(t *testing.T) {
	website := &model.Website{ID: 1, URL: "http://127.0.0.1:9/"}

	TakeScreenshot(website, 1)

	assert.Nil(t, website.Screenshot)
}

func TestTakeScreenshotBrowserFailureKeepsWebsiteUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	cfg := config.Get()
	originalBrowser := cfg.Screenshots.Browser
	originalPath := cfg.Screenshots.Path
	cfg.Screenshots.Browser = "/nonexistent/browser"
	cfg.Screenshots.Path = t.TempDir()
	defer func() {
		cfg.Screenshots.Browser = originalBrowser
		cfg.Screenshots.Path = originalPath
	}()

	website := &model.Website{ID: 7, URL: server.URL}

	TakeScreenshot(website, 1)

	assert.Nil(t, website.Screenshot)
}
