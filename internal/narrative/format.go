package narrative

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// num formats v rounded to one decimal place.
func num(v float64) string {
	return fmt.Sprintf("%.1f", round1(v))
}

// plural formats n with the singular or plural noun.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

// truncate cuts s to at most n runes, appending "..." when it was cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
