package cli

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/coregx/fsa"
)

// FormatWords renders dictionary results as "(w1, w2, ...)".
func FormatWords(words []string) string {
	return "(" + strings.Join(words, ", ") + ")"
}

// Display makes a document window printable on one line: line breaks
// become a backslash and other unprintable bytes a question mark.
func Display(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\n' || c == '\r':
			sb.WriteByte('\\')
		case c < unicode.MaxASCII && (unicode.IsPrint(rune(c)) || c == '\t'):
			sb.WriteByte(c)
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// FormatMatch renders one document match: the window padded to a column
// wide enough for chunk bytes, then every position either as line and
// column or as byte offset.
func FormatMatch(m fsa.Match, chunk int, lineCol bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s", chunk+5, Display(m.Text))
	for _, p := range m.Positions {
		if lineCol {
			fmt.Fprintf(&sb, " [line %d, col %d]", p.Line, p.Column)
		} else {
			fmt.Fprintf(&sb, " [%d]", p.Index)
		}
	}
	return sb.String()
}
