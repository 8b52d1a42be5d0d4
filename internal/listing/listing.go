// Package listing renders Brainfuck programs as assembler style listings.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/bfgorun/internal/vm"
)

// Options controls the listing output format.
type Options struct {
	OffsetComments bool // output instruction offsets
	HexComments    bool // output instruction bytes as hex values in comments
}

// New returns a new options instance with default options.
func New() Options {
	return Options{
		OffsetComments: true,
		HexComments:    true,
	}
}

// Write renders the instruction bytes of program as a listing, one
// instruction per line with its symbol and mnemonic. Loop instructions
// are annotated with the offset of the matching bracket, unmatched
// brackets are called out instead of failing the listing.
func Write(writer io.Writer, program []byte, options Options) error {
	partner := matchBrackets(program)

	for i, b := range program {
		ins := vm.Instruction(b)

		var sb strings.Builder
		if options.OffsetComments {
			fmt.Fprintf(&sb, "%04x  ", i)
		}
		fmt.Fprintf(&sb, "%c  %-5s", b, ins)

		var comments []string
		if options.HexComments {
			comments = append(comments, fmt.Sprintf("$%02x", b))
		}
		if ins == vm.LoopStart || ins == vm.LoopEnd {
			if match, ok := partner[i]; ok {
				comments = append(comments, fmt.Sprintf("match %04x", match))
			} else {
				comments = append(comments, "unmatched")
			}
		}
		if len(comments) > 0 {
			sb.WriteString("  ; " + strings.Join(comments, " "))
		}

		if _, err := fmt.Fprintln(writer, sb.String()); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
	}
	return nil
}

// matchBrackets pairs up loop start and end offsets. Unmatched brackets
// are left out of the returned map.
func matchBrackets(program []byte) map[int]int {
	partner := map[int]int{}
	var stack []int

	for i, b := range program {
		switch vm.Instruction(b) {
		case vm.LoopStart:
			stack = append(stack, i)
		case vm.LoopEnd:
			if len(stack) == 0 {
				continue
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			partner[start] = i
			partner[i] = start
		}
	}
	return partner
}
