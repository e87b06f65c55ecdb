// Package textproc implements the IC text transforms applied to dialogue
// before it is broadcast.
package textproc

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// FilterReplacement replaces every match of a filter pattern.
const FilterReplacement = "❌"

// Flags selects the per-message transforms. They mirror the moderation state
// of the speaking session and the medieval mode of its area.
type Flags struct {
	Gimped       bool
	Medieval     bool
	Shaken       bool
	Disemvoweled bool
}

// Pipeline applies filter, gimp, medieval, shake and disemvowel in that order.
// Safe for concurrent use.
type Pipeline struct {
	filters  []*regexp.Regexp
	gimp     []string
	medieval map[string]string
	wordRe   *regexp.Regexp

	mu  sync.Mutex
	rng *rand.Rand
}

// Config holds the content lists of a Pipeline.
type Config struct {
	// Filters are regular expressions matched case-insensitively.
	Filters []string
	// GimpList holds the lines that replace a gimped session's text.
	GimpList []string
	// MedievalWords extends DefaultMedievalWords. Keys are matched as whole
	// words regardless of case.
	MedievalWords map[string]string
}

// NewPipeline compiles the filter patterns and medieval table.
// rng drives gimp selection and word shuffling.
func NewPipeline(cfg Config, rng *rand.Rand) (*Pipeline, error) {
	p := &Pipeline{
		gimp:     append([]string(nil), cfg.GimpList...),
		medieval: make(map[string]string, len(DefaultMedievalWords)+len(cfg.MedievalWords)),
		rng:      rng,
	}

	for _, pattern := range cfg.Filters {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling filter %q: %w", pattern, err)
		}
		p.filters = append(p.filters, re)
	}

	for k, v := range DefaultMedievalWords {
		p.medieval[strings.ToLower(k)] = v
	}
	for k, v := range cfg.MedievalWords {
		p.medieval[strings.ToLower(k)] = v
	}

	if len(p.medieval) > 0 {
		words := make([]string, 0, len(p.medieval))
		for k := range p.medieval {
			words = append(words, regexp.QuoteMeta(k))
		}
		// Longest first so "you're" wins over "you".
		sort.Slice(words, func(i, j int) bool {
			if len(words[i]) != len(words[j]) {
				return len(words[i]) > len(words[j])
			}
			return words[i] < words[j]
		})
		re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compiling medieval table: %w", err)
		}
		p.wordRe = re
	}

	return p, nil
}

// Apply runs the transforms selected by f over text.
func (p *Pipeline) Apply(text string, f Flags) string {
	text = p.Filter(text)
	if f.Gimped {
		text = p.Gimp(text)
	}
	if f.Medieval {
		text = p.Medievalize(text)
	}
	if f.Shaken {
		text = p.Shake(text)
	}
	if f.Disemvoweled {
		text = Disemvowel(text)
	}
	return text
}

// Filter replaces every filter match with FilterReplacement.
func (p *Pipeline) Filter(text string) string {
	for _, re := range p.filters {
		text = re.ReplaceAllLiteralString(text, FilterReplacement)
	}
	return text
}

// Gimp returns a random line of the gimp list. With an empty list the text
// is kept.
func (p *Pipeline) Gimp(text string) string {
	if len(p.gimp) == 0 {
		return text
	}
	p.mu.Lock()
	i := p.rng.IntN(len(p.gimp))
	p.mu.Unlock()
	return p.gimp[i]
}

// Medievalize swaps words found in the medieval table, keeping the case of
// the original word.
func (p *Pipeline) Medievalize(text string) string {
	if p.wordRe == nil {
		return text
	}
	return p.wordRe.ReplaceAllStringFunc(text, func(word string) string {
		repl, ok := p.medieval[strings.ToLower(word)]
		if !ok {
			return word
		}
		return matchCase(word, repl)
	})
}

// Shake shuffles the space separated words of text.
func (p *Pipeline) Shake(text string) string {
	parts := strings.Split(text, " ")
	p.mu.Lock()
	p.rng.Shuffle(len(parts), func(i, j int) {
		parts[i], parts[j] = parts[j], parts[i]
	})
	p.mu.Unlock()
	return strings.Join(parts, " ")
}

// Disemvowel removes ASCII vowels.
func Disemvowel(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			return -1
		}
		return r
	}, text)
}

func matchCase(original, repl string) string {
	if original == strings.ToUpper(original) && original != strings.ToLower(original) && utf8.RuneCountInString(original) > 1 {
		return strings.ToUpper(repl)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(repl)
		return string(unicode.ToUpper(r)) + repl[size:]
	}
	return repl
}
