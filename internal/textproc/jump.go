package textproc

import "strconv"

// JumpKind is a testimony navigation command.
type JumpKind int

const (
	JumpNext JumpKind = iota + 1
	JumpPrevious
	JumpRepeat
	// JumpTo moves to an absolute statement index.
	JumpTo
)

// Jump is a parsed testimony navigation token.
type Jump struct {
	Kind  JumpKind
	Index int // for JumpTo
}

// ParseJump parses a whole message as a navigation token: ">", "<", "=",
// or ">N"/"<N" with N a decimal statement index.
func ParseJump(text string) (Jump, bool) {
	switch text {
	case ">":
		return Jump{Kind: JumpNext}, true
	case "<":
		return Jump{Kind: JumpPrevious}, true
	case "=":
		return Jump{Kind: JumpRepeat}, true
	}

	if len(text) < 2 || (text[0] != '>' && text[0] != '<') {
		return Jump{}, false
	}
	digits := text[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Jump{}, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Jump{}, false
	}
	return Jump{Kind: JumpTo, Index: n}, true
}

// IsJumpToken reports whether text is a testimony navigation token.
func IsJumpToken(text string) bool {
	_, ok := ParseJump(text)
	return ok
}
