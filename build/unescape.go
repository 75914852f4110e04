// Package build implements the lexicon compiler: it parses CSV rows into
// word entries, resolves split and structure references across the system
// and user id namespaces, and streams the packed binary entry block to a
// seekable sink.
package build

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/kotodict/kotodict"
)

// Escape markers are \uXXXX with exactly four hex digits, or \u{X...}
// with one or more hex digits inside braces. Anything else passes
// through untouched.
var unicodeLiteral = regexp.MustCompile(`\\u([0-9a-fA-F]{4}|\{[0-9a-fA-F]+\})`)

// Unescape replaces every escape marker in text with the literal code
// point it denotes. A marker denoting an invalid code point (a surrogate
// half, a value beyond U+10FFFF, or hex overflowing 32 bits) fails with a
// format error.
func Unescape(text string) (string, error) {
	if !unicodeLiteral.MatchString(text) {
		return text, nil
	}
	var bad error
	out := unicodeLiteral.ReplaceAllStringFunc(text, func(m string) string {
		hex := m[2:]
		if hex[0] == '{' {
			hex = hex[1 : len(hex)-1]
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			if bad == nil {
				bad = &kotodict.ErrBadEscape{Sequence: m}
			}
			return m
		}
		return string(rune(v))
	})
	if bad != nil {
		return "", bad
	}
	return out, nil
}
