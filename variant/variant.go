package variant

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxVariants is the most variants the default policy can produce.
const MaxVariants = 5

// Transform is one named casing rule.
type Transform struct {
	Name  string
	Apply func(string) string
}

// Policy is an ordered list of transforms. The zero value yields no variants.
type Policy struct {
	transforms []Transform
}

// New creates a policy from the given transforms, applied in order.
func New(transforms ...Transform) Policy {
	return Policy{transforms: append([]Transform(nil), transforms...)}
}

// Original leaves the query untouched.
var Original = Transform{Name: "original", Apply: func(s string) string { return s }}

// Lower lower-cases the whole query.
var Lower = Transform{Name: "lower", Apply: func(s string) string {
	return cases.Lower(language.Und).String(s)
}}

// Upper upper-cases the whole query.
var Upper = Transform{Name: "upper", Apply: func(s string) string {
	return cases.Upper(language.Und).String(s)
}}

// Capitalize upper-cases the first character and lower-cases the rest.
var Capitalize = Transform{Name: "capitalize", Apply: capitalize}

// Title upper-cases the first character of every whitespace-separated word.
// The rest of each word is left as typed.
var Title = Transform{Name: "title", Apply: title}

// Default returns the fallback policy for case-sensitive endpoints:
// original, lower, upper, capitalized, title.
func Default() Policy {
	return New(Original, Lower, Upper, Capitalize, Title)
}

// Exact returns a policy that only tries the query as typed.
func Exact() Policy {
	return New(Original)
}

// Names returns the transform names in application order.
func (p Policy) Names() []string {
	names := make([]string, len(p.transforms))
	for i, t := range p.transforms {
		names[i] = t.Name
	}
	return names
}

// Variants applies every transform to query and returns the distinct
// results in first-seen order. query is expected to be trimmed; an empty
// query yields nil.
func (p Policy) Variants(query string) []string {
	if query == "" {
		return nil
	}

	seen := make(map[string]bool, len(p.transforms))
	variants := make([]string, 0, len(p.transforms))
	for _, t := range p.transforms {
		v := t.Apply(query)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return cases.Lower(language.Und).String(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(cases.Upper(language.Und).String(s[:size]))
	b.WriteString(cases.Lower(language.Und).String(s[size:]))
	return b.String()
}

func title(s string) string {
	upper := cases.Upper(language.Und)
	var b strings.Builder
	b.Grow(len(s))
	wordStart := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		chunk := s[i : i+size]
		if wordStart && !unicode.IsSpace(r) {
			chunk = upper.String(chunk)
		}
		b.WriteString(chunk)
		wordStart = unicode.IsSpace(r)
		i += size
	}
	return b.String()
}
