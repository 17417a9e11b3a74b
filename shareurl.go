package chatshare

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	shareURLPattern = regexp.MustCompile(`^https?://(?:www\.)?chatgpt\.com/share/[a-f0-9\-]{36}`)
	shareIDPattern  = regexp.MustCompile(`/share/([a-f0-9\-]{36})`)
	slugSeparators  = regexp.MustCompile(`[^a-z0-9]+`)
)

// ValidateShareURL returns EINVALID unless rawURL looks like a public
// conversation share link.
func ValidateShareURL(rawURL string) error {
	if !shareURLPattern.MatchString(strings.TrimSpace(rawURL)) {
		return Errorf(EINVALID, "invalid share URL %q", rawURL)
	}
	return nil
}

// ShareID returns the 36-character share identifier of rawURL, or a slug of
// the whole URL when it carries none.
func ShareID(rawURL string) string {
	if m := shareIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return Slugify(rawURL)
}

// Slugify folds s to lowercase ASCII words joined by hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = slugSeparators.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(folded, "-")
}

// CanonicalShareURL normalizes rawURL for duplicate detection: https
// scheme, lowercase host without "www.", no query, fragment or trailing
// slash. Unparseable input is returned trimmed.
func CanonicalShareURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Scheme = "https"
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}
