package collector

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lowerFirst lower-cases the first letter of a name unless it starts an
// acronym, so Description becomes description but UTF8String is kept.
func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(r) {
		return s
	}
	if next, _ := utf8.DecodeRuneInString(s[n:]); unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// DeriveSelector maps a Go method name and its parameter count to a
// selector. Underscores separate the keywords of a multi-part selector:
//
//	Hash, 0                 -> hash
//	IsKindOfClass, 1        -> isKindOfClass:
//	InitWithBytes_Length, 2 -> initWithBytes:length:
func DeriveSelector(name string, nparams int) (string, error) {
	parts := strings.Split(name, "_")
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("method %s has an empty selector keyword", name)
		}
	}
	if nparams == 0 {
		if len(parts) != 1 {
			return "", fmt.Errorf("method %s takes no arguments but names %d keywords", name, len(parts))
		}
		return lowerFirst(name), nil
	}
	if len(parts) != nparams {
		return "", fmt.Errorf("method %s takes %d arguments but names %d keywords", name, nparams, len(parts))
	}

	var b strings.Builder
	for _, p := range parts {
		b.WriteString(lowerFirst(p))
		b.WriteByte(':')
	}
	return b.String(), nil
}

// CheckSelector verifies that an explicit selector takes nparams arguments.
func CheckSelector(sel string, nparams int) error {
	if sel == "" {
		return fmt.Errorf("empty selector")
	}
	if strings.ContainsAny(sel, " \t") {
		return fmt.Errorf("selector %q contains whitespace", sel)
	}
	if n := strings.Count(sel, ":"); n != nparams {
		return fmt.Errorf("selector %s takes %d arguments, method has %d", sel, n, nparams)
	}
	return nil
}
