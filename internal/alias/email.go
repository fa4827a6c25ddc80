// Package alias builds plus-addressed email aliases. The helpers here are
// shared by validation and generation so both compute identical suffixes.
package alias

import (
	"regexp"
	"strings"
	"time"

	"github.com/darkodi/alias-buddy/internal/encoder"
)

const (
	// EmailMaxLength is the RFC 5321 limit for a whole address
	EmailMaxLength = 254
	// LocalPartMaxLength is the limit for the part before '@'
	LocalPartMaxLength = 64
	// HashLength is the width of the random suffix component
	HashLength = encoder.HashLength
)

var (
	// RE2 \s is ASCII only; \v, \p{Z} and the BOM cover the remaining
	// whitespace a browser email check rejects.
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	unsafeRun    = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedDash = regexp.MustCompile(`-+`)
)

// IsValidEmail reports whether s looks like local@domain.tld and fits
// within EmailMaxLength.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s) && len(s) <= EmailMaxLength
}

// ParseEmail splits an address at its first '@'. The domain is empty when
// there is no '@'.
func ParseEmail(email string) (localPart, domain string) {
	localPart, domain, _ = strings.Cut(email, "@")
	return localPart, domain
}

// SanitizeForEmail turns free text into a lowercase, dash-delimited token
// made of [a-z0-9-]. Applying it twice gives the same result as once.
func SanitizeForEmail(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = unsafeRun.ReplaceAllString(s, "-")
	s = repeatedDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FormatDate renders t as YYYYMMDD in t's own location
func FormatDate(t time.Time) string {
	return t.Format("20060102")
}

// BuildSuffix joins the non-empty components in order with dashes
func BuildSuffix(components ...string) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "-")
}

// WouldExceedLimit reports whether local+"+"+suffix would be longer than
// LocalPartMaxLength for a suffix of suffixLen characters.
func WouldExceedLimit(baseEmail string, suffixLen int) bool {
	localPart, _ := ParseEmail(baseEmail)
	return len(localPart)+suffixLen+1 > LocalPartMaxLength
}

// GetRemainingChars returns how many suffix characters still fit after the
// local part and the '+' separator. The result may be negative.
func GetRemainingChars(baseEmail string) int {
	localPart, _ := ParseEmail(baseEmail)
	return LocalPartMaxLength - len(localPart) - 1
}
