// Package normalize canonicalizes user supplied text before it is validated or stored.
package normalize

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidURL is returned when a value is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid URL")

// hostProfile maps hosts like idna.Lookup but without STD3 rules, so
// underscores in host labels are accepted.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(false),
)

// TagName returns the canonical form of a tag name.
// Tag identity is decided on this value, so "  Go  Lang " and "go lang" are the same tag.
//
//	"  Machine   Learning " → "machine learning"
//	"CAFÉ" (decomposed)     → "café" (composed)
func TagName(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.Join(strings.Fields(s), " ")
	// A Caser carries state, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// Title trims surrounding whitespace and composes Unicode so length limits count what users see.
func Title(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// Notes returns nil for missing or empty notes. Anything else is NFC composed
// with its whitespace left alone.
func Notes(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	s := norm.NFC.String(*raw)
	return &s
}

// URL parses an absolute http(s) URL and converts its host to lowercase ASCII (IDNA).
// Path, query and fragment are kept as given.
func URL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrInvalidURL
	}
	u.Scheme = scheme

	hostname := u.Hostname()
	if hostname == "" {
		return "", ErrInvalidURL
	}

	// IPv6 literals are passed through untouched.
	if !strings.Contains(hostname, ":") {
		ascii, err := hostProfile.ToASCII(hostname)
		if err != nil {
			return "", ErrInvalidURL
		}
		if port := u.Port(); port != "" {
			u.Host = ascii + ":" + port
		} else {
			u.Host = ascii
		}
	}

	return u.String(), nil
}
