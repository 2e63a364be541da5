package parser

import (
	"regexp"
	"strings"
)

// phonePattern matches an optional '+' followed by 10 to 13 digits not touching other digits.
var phonePattern = regexp.MustCompile(`(?:^|[^0-9])\+?[0-9]{10,13}(?:[^0-9]|$)`)

// Identity holds the contact fields found in a resume. Each value is the full
// matching line, not a narrowed token.
type Identity struct {
	Name  *string
	Email *string
	Phone *string
}

// ExtractIdentity scans all lines independently for name, email and phone.
func ExtractIdentity(lines []string) Identity {
	var id Identity
	if len(lines) == 0 {
		return id
	}
	id.Name = stringPtr(lines[0])
	for _, line := range lines {
		if id.Email == nil && strings.Contains(line, "@") {
			id.Email = stringPtr(line)
		}
		if id.Phone == nil && IsPhoneLine(line) {
			id.Phone = stringPtr(line)
		}
		if id.Email != nil && id.Phone != nil {
			break
		}
	}
	return id
}

// IsPhoneLine reports whether line contains a phone-number-shaped digit run.
func IsPhoneLine(line string) bool {
	return phonePattern.MatchString(line)
}

func stringPtr(s string) *string {
	return &s
}
