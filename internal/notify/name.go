package notify

import (
	"strings"
	"unicode"

	"syndik/internal/domain"
)

// RecipientName returns the account's display name, deriving one from the
// email local part when the name was never filled in.
func RecipientName(acct domain.Account) string {
	if strings.TrimSpace(acct.Name) != "" {
		return acct.Name
	}
	first, last := deriveNameFromEmail(acct.Email)
	if first == last {
		return first
	}
	return first + " " + last
}

func deriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Administrator", "Administrator"
	}

	first := capitalize(parts[0])
	last := first
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}
	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
