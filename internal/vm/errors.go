package vm

import "fmt"

// SyntaxError indicates a malformed loop construct, an unmatched [ or ]
// reached during execution.
type SyntaxError struct {
	Message  string
	Position int // program tape position of the offending instruction
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at program position %d", e.Message, e.Position)
}

// RangeError indicates an attempt to move a tape cursor below position 0.
type RangeError struct {
	Position int // the attempted target position
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("tape position out of range: %d", e.Position)
}
