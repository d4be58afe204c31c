// Package websearch implements the pluggable web search adapter described
// in SPEC_FULL.md §4.7: query construction with LLM refinement and a
// deterministic fallback, two HTTP back-ends, trusted-domain scoring,
// low-quality filtering, and title-similarity deduplication.
package websearch

import "strings"

var trustedNewsDomains = map[string]bool{
	"reuters.com": true, "apnews.com": true, "bbc.com": true, "bbc.co.uk": true,
	"bloomberg.com": true, "ft.com": true, "wsj.com": true, "cnbc.com": true,
	"aljazeera.com": true, "dw.com": true, "theguardian.com": true,
	"economist.com": true, "forbes.com": true, "axios.com": true, "politico.com": true,
	"imf.org": true, "worldbank.org": true, "state.gov": true, "europa.eu": true,
}

var lowQualityPatterns = []string{
	"facebook.com", "twitter.com", "x.com", "reddit.com", "quora.com",
	"medium.com", "blogspot.com", "wordpress.com", "tumblr.com",
	"prnewswire.com", "businesswire.com", "globenewswire.com",
}

func hostOf(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "www.")
	if idx := strings.IndexAny(url, "/?#"); idx >= 0 {
		url = url[:idx]
	}
	return strings.ToLower(url)
}

// IsTrustedDomain reports whether url's host is on the trusted news-domain
// allowlist.
func IsTrustedDomain(url string) bool {
	return trustedNewsDomains[hostOf(url)]
}

// IsLowQualitySource reports whether url matches a known low-quality
// pattern (social media, blog platforms, press-release wires).
func IsLowQualitySource(url string) bool {
	host := hostOf(url)
	for _, pattern := range lowQualityPatterns {
		if strings.Contains(host, pattern) {
			return true
		}
	}
	return false
}
