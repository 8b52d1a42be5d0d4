// Package vm implements a virtual machine for the Brainfuck language,
// an eight instruction tape based machine over an unbounded byte memory.
package vm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
)

// memorySize is the initial length of the data tape.
const memorySize = 4096

// cancelCheckInterval is the number of executed instructions between
// context cancellation checks.
const cancelCheckInterval = 4096

// flusher is implemented by buffering output writers. The machine
// flushes after every output instruction so that interactive programs
// see each byte as it is written.
type flusher interface {
	Flush() error
}

// Machine executes Brainfuck programs. It owns a data tape, a program
// tape and a stack of pending loop start positions. A machine must not
// be driven by more than one goroutine at a time.
type Machine struct {
	logger *log.Logger

	memory  *Tape
	program *Tape

	loopStack  []int
	programLen int

	input   io.Reader
	output  io.Writer
	readBuf [1]byte
}

// New creates a machine that reads input bytes from input and writes
// output bytes to output.
func New(logger *log.Logger, input io.Reader, output io.Writer) *Machine {
	return &Machine{
		logger:  logger,
		memory:  NewTape(memorySize),
		program: NewTape(0),
		input:   input,
		output:  output,
	}
}

// LoadProgram filters source down to its instruction bytes and loads
// them into the program tape, resetting the program cursor and the
// loop stack.
func (m *Machine) LoadProgram(source string) {
	filtered := Filter(source)
	m.program.Load(filtered)
	m.loopStack = m.loopStack[:0]
	m.programLen = len(filtered)

	m.logger.Debug("Program loaded",
		log.Int("instructions", m.programLen),
		log.Int("source_bytes", len(source)))
}

// Run executes the loaded program until the cursor runs off the end of
// the program tape. It returns a SyntaxError for unmatched brackets, a
// RangeError when the data cursor would move below position 0, or the
// context error when ctx is cancelled. A failed run leaves all already
// written output bytes in place.
func (m *Machine) Run(ctx context.Context) error {
	steps := 0
	for m.program.Cursor() < m.programLen {
		if err := m.execute(Instruction(m.program.CurrentByte())); err != nil {
			return err
		}
		if err := m.program.MoveCursorTo(m.program.Cursor() + 1); err != nil {
			return err
		}

		steps++
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Machine) execute(ins Instruction) error {
	switch ins {
	case MoveRight:
		return m.memory.MoveCursorTo(m.memory.Cursor() + 1)
	case MoveLeft:
		return m.memory.MoveCursorTo(m.memory.Cursor() - 1)
	case Increment:
		m.memory.SetCurrentByte(int(m.memory.CurrentByte()) + 1)
	case Decrement:
		m.memory.SetCurrentByte(int(m.memory.CurrentByte()) - 1)
	case Output:
		return m.writeByte(m.memory.CurrentByte())
	case Input:
		return m.readByte()
	case LoopStart:
		return m.loopStart()
	case LoopEnd:
		return m.loopEnd()
	}
	return nil
}

// loopStart enters the loop body when the current cell is non-zero,
// recording the loop position on the stack. A zero cell skips forward
// to the matching loop end instead: a forward walk over the program
// tape that tracks bracket nesting and leaves the cursor on the
// matching ] so that the dispatch loop steps past it.
func (m *Machine) loopStart() error {
	pos := m.program.Cursor()
	if m.memory.CurrentByte() != 0 {
		m.loopStack = append(m.loopStack, pos)
		return nil
	}

	depth := 0
	for i := pos + 1; i < m.programLen; i++ {
		if err := m.program.MoveCursorTo(i); err != nil {
			return err
		}
		switch Instruction(m.program.CurrentByte()) {
		case LoopStart:
			depth++
		case LoopEnd:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
	return &SyntaxError{Message: "unmatched [", Position: pos}
}

// loopEnd pops the loop when the current cell is zero and otherwise
// jumps back to the matching loop start, leaving it on the stack for
// the next iteration.
func (m *Machine) loopEnd() error {
	if len(m.loopStack) == 0 {
		return &SyntaxError{Message: "unmatched ]", Position: m.program.Cursor()}
	}
	if m.memory.CurrentByte() == 0 {
		m.loopStack = m.loopStack[:len(m.loopStack)-1]
		return nil
	}
	return m.program.MoveCursorTo(m.loopStack[len(m.loopStack)-1])
}

func (m *Machine) writeByte(b byte) error {
	if _, err := m.output.Write([]byte{b}); err != nil {
		return fmt.Errorf("writing output byte: %w", err)
	}
	if f, ok := m.output.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
	return nil
}

// readByte stores one input byte in the current cell. End of input
// stores 0 and is not an error.
func (m *Machine) readByte() error {
	if _, err := io.ReadFull(m.input, m.readBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			m.memory.SetCurrentByte(0)
			return nil
		}
		return fmt.Errorf("reading input byte: %w", err)
	}
	m.memory.SetCurrentByte(int(m.readBuf[0]))
	return nil
}
