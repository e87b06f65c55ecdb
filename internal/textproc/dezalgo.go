package textproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Dezalgo removes runs of tolerance or more consecutive combining marks, the
// stacking that "zalgo" text relies on. Ordinary accents survive because the
// text is decomposed first and recomposed afterwards. tolerance <= 0 leaves
// the text untouched.
func Dezalgo(text string, tolerance int) string {
	if tolerance <= 0 {
		return text
	}

	decomposed := []rune(norm.NFD.String(text))
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(decomposed); {
		if !unicode.Is(unicode.Mn, decomposed[i]) {
			b.WriteRune(decomposed[i])
			i++
			continue
		}
		j := i
		for j < len(decomposed) && unicode.Is(unicode.Mn, decomposed[j]) {
			j++
		}
		if j-i < tolerance {
			for _, r := range decomposed[i:j] {
				b.WriteRune(r)
			}
		}
		i = j
	}

	return norm.NFC.String(b.String())
}
