// Package sortkey turns titles into keys that sort in dictionary order.
//
// Case, accents, spaces and punctuation are ignored, a leading "A", "An"
// or "The" is dropped, and a leading numeral is read as if it were
// written out in words, so "12 Angry Men" files under T for "Twelve".
// Keys compare with plain string comparison.
package sortkey

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/divan/num2words"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

var fold = cases.Fold()

// Key returns the dictionary-order sorting key for title. It returns ""
// when the title has no letters or digits at all.
func Key(title string) string {
	s := transliterate(title)
	s = collapse(s)
	s = stripArticle(s)
	s = spellLeadingNumber(s)
	return strings.ReplaceAll(s, " ", "")
}

// transliterate folds case and maps everything onto lower-case ASCII.
func transliterate(s string) string {
	s = fold.String(s)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "&", "and")
}

func collapse(s string) string {
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(s, " "))
}

// stripArticle drops one leading article. Titles about the letter A
// ("A is for ...") keep theirs.
func stripArticle(s string) string {
	switch {
	case strings.HasPrefix(s, "a "):
		if strings.HasPrefix(s, "a is for ") {
			return s
		}
		return s[len("a "):]
	case strings.HasPrefix(s, "an "):
		return s[len("an "):]
	case strings.HasPrefix(s, "the "):
		return s[len("the "):]
	}
	return s
}

func spellLeadingNumber(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return s
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Too long for an int; leave the digits to sort as digits.
		return s
	}
	return collapse(spell(n) + s[end:])
}

// Scales above num2words' billion, largest first.
var bigScales = []struct {
	name string
	size int
}{
	{"quintillion", 1e18},
	{"quadrillion", 1e15},
	{"trillion", 1e12},
}

// spell writes n out in British English. num2words stops at billions, so
// larger numbers are spelled group by group.
func spell(n int) string {
	if n < 1e12 {
		return num2words.ConvertAnd(n)
	}
	var parts []string
	for _, sc := range bigScales {
		if g := n / sc.size % 1000; g > 0 {
			parts = append(parts, num2words.ConvertAnd(g)+" "+sc.name)
		}
	}
	switch rest := n % 1e12; {
	case rest == 0:
	case rest < 100:
		parts = append(parts, "and", num2words.ConvertAnd(rest))
	default:
		parts = append(parts, num2words.ConvertAnd(rest))
	}
	return strings.Join(parts, " ")
}
