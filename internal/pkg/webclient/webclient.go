package webclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/config"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/logger"
	"go.uber.org/zap"
)

// Options control a single outbound request.
type Options struct {
	Headers map[string]string
	Params  url.Values
	Body    io.Reader
	Timeout time.Duration
}

const defaultTimeout = 10 * time.Second

// Get performs an outbound GET request. Failures are logged and reported as
// a nil response, callers only need to nil-check the result.
func Get(rawURL string, opts *Options) *http.Response {
	return do(http.MethodGet, rawURL, opts)
}

// Post performs an outbound POST request with the same failure handling as Get.
func Post(rawURL string, opts *Options) *http.Response {
	return do(http.MethodPost, rawURL, opts)
}

// requestTimeout resolves the timeout of one request: an explicit option
// wins, otherwise the configured outbound timeout applies.
func requestTimeout(opts *Options) time.Duration {
	if opts != nil && opts.Timeout > 0 {
		return opts.Timeout
	}

	if secs := config.Get().Outbound.TimeoutSeconds; secs > 0 {
		return time.Duration(secs) * time.Second
	}

	return defaultTimeout
}

func do(method, rawURL string, opts *Options) *http.Response {
	if opts == nil {
		opts = &Options{}
	}

	timeout := requestTimeout(opts)

	if len(opts.Params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL = rawURL + sep + opts.Params.Encode()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, opts.Body)
	if err != nil {
		logger.Debug("Invalid outbound request",
			zap.String("url", rawURL),
			zap.Error(err))
		return nil
	}

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{
		Timeout: timeout,
	}

	resp, err := client.Do(req)
	if err != nil {
		logFailure(rawURL, err)
		return nil
	}

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Debug("Outbound request returned error status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		resp.Body.Close()
		return nil
	}

	return resp
}

func logFailure(rawURL string, err error) {
	var urlErr *url.Error

	category := "request"

	switch {
	case errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err):
		category = "timeout"
	case errors.As(err, &urlErr):
		if urlErr.Timeout() {
			category = "timeout"
		} else if strings.Contains(urlErr.Error(), "stopped after") {
			category = "redirects"
		} else {
			category = "connection"
		}
	}

	logger.Debug("Outbound request failed",
		zap.String("url", rawURL),
		zap.String("category", category),
		zap.Error(err))
}
