package textproc

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, cfg Config) *Pipeline {
	t.Helper()
	p, err := NewPipeline(cfg, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return p
}

func TestNewPipeline_InvalidFilter(t *testing.T) {
	_, err := NewPipeline(Config{Filters: []string{"(unclosed"}}, rand.New(rand.NewPCG(1, 2)))
	assert.Error(t, err)
}

func TestPipeline_Filter(t *testing.T) {
	p := newTestPipeline(t, Config{Filters: []string{"badword", `d[a4]rn`}})

	assert.Equal(t, "what a ❌ day", p.Filter("what a BadWord day"))
	assert.Equal(t, "❌ it, ❌!", p.Filter("darn it, D4RN!"))
	assert.Equal(t, "clean", p.Filter("clean"))
}

func TestPipeline_Gimp(t *testing.T) {
	lines := []string{"one", "two", "three"}
	p := newTestPipeline(t, Config{GimpList: lines})

	for range 20 {
		assert.Contains(t, lines, p.Gimp("anything"))
	}

	empty := newTestPipeline(t, Config{})
	assert.Equal(t, "kept", empty.Gimp("kept"))
}

func TestPipeline_GimpReproducible(t *testing.T) {
	cfg := Config{GimpList: []string{"a", "b", "c", "d", "e"}}
	p1 := newTestPipeline(t, cfg)
	p2 := newTestPipeline(t, cfg)

	for range 10 {
		assert.Equal(t, p1.Gimp(""), p2.Gimp(""))
	}
}

func TestPipeline_Medievalize(t *testing.T) {
	p := newTestPipeline(t, Config{MedievalWords: map[string]string{"witness": "testifier"}})

	tests := []struct {
		in, want string
	}{
		{"you are my friend", "thou art mine companion"},
		{"Hello there", "Hail there"},
		{"YES", "AYE"},
		{"you're lying", "thou art lying"},
		{"the witness lied", "the testifier lied"},
		{"yourself", "yourself"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Medievalize(tt.in), tt.in)
	}
}

func TestPipeline_Shake(t *testing.T) {
	p := newTestPipeline(t, Config{})
	in := "the quick brown fox jumps over the lazy dog"

	out := p.Shake(in)
	assert.ElementsMatch(t, strings.Split(in, " "), strings.Split(out, " "))
}

func TestDisemvowel(t *testing.T) {
	assert.Equal(t, "Hld t!", Disemvowel("Hold it!"))
	assert.Equal(t, "", Disemvowel("AEIOUaeiou"))
}

func TestPipeline_ApplyOrder(t *testing.T) {
	p := newTestPipeline(t, Config{
		Filters:  []string{"secret"},
		GimpList: []string{"you are a secret"},
	})

	// Gimp runs after the filter, so the gimp line itself is not filtered;
	// medieval and disemvowel then run over the gimp line.
	got := p.Apply("the secret", Flags{Gimped: true, Medieval: true, Disemvoweled: true})
	assert.Equal(t, "th rt  scrt", got)

	assert.Equal(t, "the ❌", p.Apply("the secret", Flags{}))
}

func TestDezalgo(t *testing.T) {
	zalgo := "h̵̡̢̧ello"
	assert.Equal(t, "hello", Dezalgo(zalgo, 3))

	assert.Equal(t, "café", Dezalgo("café", 3), "single accents survive")
	assert.Equal(t, "\u00e1\u0302", Dezalgo("a\u0301\u0302", 3), "short runs survive")
	assert.Equal(t, zalgo, Dezalgo(zalgo, 0))
}

func TestParseJump(t *testing.T) {
	tests := []struct {
		in     string
		want   Jump
		wantOK bool
	}{
		{">", Jump{Kind: JumpNext}, true},
		{"<", Jump{Kind: JumpPrevious}, true},
		{"=", Jump{Kind: JumpRepeat}, true},
		{">3", Jump{Kind: JumpTo, Index: 3}, true},
		{"<0", Jump{Kind: JumpTo, Index: 0}, true},
		{">12", Jump{Kind: JumpTo, Index: 12}, true},
		{">-1", Jump{}, false},
		{">a", Jump{}, false},
		{"> 3", Jump{}, false},
		{">>", Jump{}, false},
		{"hello", Jump{}, false},
		{"", Jump{}, false},
		{">99999999999999999999", Jump{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseJump(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, IsJumpToken(tt.in), tt.in)
	}
}
