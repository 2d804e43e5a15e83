package token

import (
	"fmt"

	"github.com/cznic/mathutil"
)

// Token is the source anchor carried by every node. Pos is the byte index
// into the source; Line and Column are 1-based and may be left zero by
// producers that only know the index.
type Token struct {
	Pos    int
	Line   int
	Column int
	Lexeme string
}

func (t Token) String() string {
	if t.Line == 0 {
		return fmt.Sprintf("@%d", t.Pos)
	}
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

// HasLocation reports whether line/column have been filled in.
func (t Token) HasLocation() bool {
	return t.Line > 0
}

// Locate derives a 1-based line and column from a position index.
// Positions outside the source are clamped to its bounds.
func Locate(source string, pos int) (line, column int) {
	pos = mathutil.Clamp(pos, 0, len(source))
	line, column = 1, 1
	for i := 0; i < pos; i++ {
		if source[i] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

// WithLocation returns a copy of t with line/column resolved against source.
func (t Token) WithLocation(source string) Token {
	if t.HasLocation() || source == "" {
		return t
	}
	t.Line, t.Column = Locate(source, t.Pos)
	return t
}
