// Package naming derives identifier-safe names for generated sources.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s on every rune that is neither a letter nor a digit
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// CanonicalName turns a human-readable API title into a type name:
// separators are dropped and each word starts with an upper-case letter.
// A name that would start with a digit gets a leading underscore.
//
//	"pet store" -> "PetStore"
//	"Order API" -> "OrderAPI"
//	"3D Secure" -> "_3DSecure"
//
// CanonicalName(CanonicalName(s)) == CanonicalName(s) for any s.
func CanonicalName(title string) string {
	var b strings.Builder
	for _, word := range Words(title) {
		b.WriteString(upperFirst(word))
	}
	name := b.String()
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		return "_" + name
	}
	return name
}

// MemberName derives a lower-camel identifier, used for operations without an explicit id
func MemberName(parts ...string) string {
	name := CanonicalName(strings.Join(parts, " "))
	if name == "" {
		return ""
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return word
	}
	// A Caser is stateful, so each call gets its own. NoLower keeps acronyms such as "API".
	head := cases.Title(language.Und, cases.NoLower).String(string(r[0]))
	return head + string(r[1:])
}
