package domain

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lowercases the domain part
// of an address. The local part is left as typed. Applying it twice yields
// the same result as applying it once.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// ValidEmail reports whether email is a bare addr-spec with a dotted domain,
// e.g. "someone@example.com". Display names and angle brackets are refused.
func ValidEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
