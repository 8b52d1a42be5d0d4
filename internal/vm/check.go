package vm

import "fmt"

// Issue describes an unmatched bracket found by Check.
type Issue struct {
	Offset  int // byte offset into the source text
	Line    int // 1-based
	Column  int // 1-based
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
}

// Check scans raw source text and reports every unmatched bracket with
// its position. The machine itself detects bracket errors only when
// execution reaches them, Check inspects the whole program without
// running it and is used by editor tooling.
func Check(source string) []Issue {
	type bracket struct {
		offset, line, column int
	}
	var open []bracket
	var issues []Issue

	line, column := 1, 1
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '[':
			open = append(open, bracket{offset: i, line: line, column: column})
		case ']':
			if len(open) == 0 {
				issues = append(issues, Issue{
					Offset:  i,
					Line:    line,
					Column:  column,
					Message: "unmatched ]",
				})
			} else {
				open = open[:len(open)-1]
			}
		case '\n':
			line++
			column = 0
		}
		column++
	}

	for _, b := range open {
		issues = append(issues, Issue{
			Offset:  b.offset,
			Line:    b.line,
			Column:  b.column,
			Message: "unmatched [",
		})
	}
	return issues
}
