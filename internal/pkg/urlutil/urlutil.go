package urlutil

import (
	"regexp"
	"strings"
)

var protocolRe = regexp.MustCompile(`(?i)^https?://`)

// RemoveProtocol strips the http/https scheme and any trailing slash from a
// URL. The result is used to compare URLs regardless of scheme.
func RemoveProtocol(rawURL string) string {
	url := strings.ToLower(rawURL)
	url = protocolRe.ReplaceAllString(url, "")

	return strings.TrimRight(url, "/")
}

// SchemeVariants returns the http and https spellings of a URL, used to find
// duplicates that differ only in scheme.
func SchemeVariants(rawURL string) (string, string) {
	bare := RemoveProtocol(rawURL)

	return "http://" + bare, "https://" + bare
}
