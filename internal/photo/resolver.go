package photo

import (
	"net/url"
	"strings"
)

const (
	logoServiceBase = "https://logo.clearbit.com/"
	dataURLPrefix   = "data:image"
)

// IsEmbedded reports whether a photo reference is a caller-supplied
// data-URL image. Embedded images always win: resolution never replaces
// them.
func IsEmbedded(photoURL string) bool {
	return strings.HasPrefix(photoURL, dataURLPrefix)
}

// Resolve derives a photo URL for a contact. A domain taken from the
// website (preferred) or the email yields a logo-service URL; otherwise the
// result is a deterministic placeholder keyed by the contact's name, so the
// same contact always renders the same image.
func Resolve(name, website, email string) string {
	if domain := resolveDomain(website, email); domain != "" {
		return logoServiceBase + domain
	}
	return "https://picsum.photos/seed/" + url.PathEscape(name) + "/200"
}

// resolveDomain extracts a bare domain from the website URL, falling back
// to the email's host part only when no website is set. A present but
// malformed website yields no domain at all: the email is never consulted
// for it, so the caller lands on the placeholder.
func resolveDomain(website, email string) string {
	if trimmed := strings.TrimSpace(website); trimmed != "" {
		raw := trimmed
		if !strings.HasPrefix(raw, "http") {
			raw = "https://" + raw
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Hostname() == "" {
			return ""
		}
		return strings.TrimPrefix(parsed.Hostname(), "www.")
	}

	if at := strings.Index(email, "@"); at != -1 {
		if domain := email[at+1:]; domain != "" {
			return domain
		}
	}

	return ""
}
