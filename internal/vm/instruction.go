package vm

// Instruction is a single instruction byte of the machine. Any byte
// that is not one of the eight instructions is dropped during program
// loading, source text comments need no special handling.
type Instruction byte

// The eight instructions of the machine.
const (
	MoveRight Instruction = '>'
	MoveLeft  Instruction = '<'
	Increment Instruction = '+'
	Decrement Instruction = '-'
	Output    Instruction = '.'
	Input     Instruction = ','
	LoopStart Instruction = '['
	LoopEnd   Instruction = ']'
)

// Valid returns whether the byte is one of the eight instructions.
func (i Instruction) Valid() bool {
	switch i {
	case MoveRight, MoveLeft, Increment, Decrement, Output, Input, LoopStart, LoopEnd:
		return true
	default:
		return false
	}
}

// String returns the assembler style mnemonic of the instruction.
func (i Instruction) String() string {
	switch i {
	case MoveRight:
		return "right"
	case MoveLeft:
		return "left"
	case Increment:
		return "inc"
	case Decrement:
		return "dec"
	case Output:
		return "out"
	case Input:
		return "in"
	case LoopStart:
		return "loop"
	case LoopEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Filter returns the instruction bytes of source in order, dropping all
// other characters.
func Filter(source string) []byte {
	filtered := make([]byte, 0, len(source))
	for i := 0; i < len(source); i++ {
		if Instruction(source[i]).Valid() {
			filtered = append(filtered, source[i])
		}
	}
	return filtered
}
