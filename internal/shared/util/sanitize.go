package util

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidFileName is returned for names that are empty after cleaning or
// that try to escape a directory.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameBytes = 255

// SanitizeFileName makes a client-supplied upload name safe to log and echo
// back. Path separators become underscores, control characters are dropped
// and the extension survives truncation.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidFileName
	}
	return truncateKeepExt(s, maxFileNameBytes), nil
}

func truncateKeepExt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	ext := ""
	if i := strings.LastIndexByte(s, '.'); i > 0 && len(s)-i <= 10 {
		ext = s[i:]
		s = s[:i]
	}
	s = s[:limit-len(ext)]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + ext
}
