package email

import (
	"strings"
	"unicode"
)

// DisplayNameFromAddress derives a readable display name from the local part
// of a mail address. Directory entries occasionally miss the displayName
// attribute; "jane.doe@corp.example" still deserves a greeting better than an
// empty string.
func DisplayNameFromAddress(addr string) string {
	localPart := addr
	if at := strings.IndexByte(addr, '@'); at >= 0 {
		localPart = addr[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "User"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
