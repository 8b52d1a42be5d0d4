package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTapeZeroInitialized(t *testing.T) {
	tape := NewTape(16)

	for _, position := range []int{0, 1, 15, 16, 100, 5000} {
		assert.NoError(t, tape.MoveCursorTo(position))
		assert.Equal(t, byte(0), tape.CurrentByte())
	}
}

func TestTapeZeroInitializedAfterLoad(t *testing.T) {
	tape := NewTape(0)
	tape.Load([]byte{1, 2, 3})

	assert.NoError(t, tape.MoveCursorTo(3))
	assert.Equal(t, byte(0), tape.CurrentByte())
	assert.NoError(t, tape.MoveCursorTo(200))
	assert.Equal(t, byte(0), tape.CurrentByte())
}

func TestTapeMoveCursorNegative(t *testing.T) {
	tape := NewTape(4)

	err := tape.MoveCursorTo(-1)
	assert.Error(t, err)

	var rangeErr *RangeError
	assert.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, -1, rangeErr.Position)
	assert.Equal(t, 0, tape.Cursor())
}

func TestTapeSetCurrentByteWraps(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  byte
	}{
		{"in range", 7, 7},
		{"max byte", 255, 255},
		{"wraps over", 256, 0},
		{"wraps over twice", 300, 44},
		{"wraps under", -1, 255},
		{"wraps under far", -256, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tape := NewTape(1)
			tape.SetCurrentByte(tt.value)
			assert.Equal(t, tt.want, tape.CurrentByte())
		})
	}
}

func TestTapeLoadResetsCursor(t *testing.T) {
	tape := NewTape(8)
	assert.NoError(t, tape.MoveCursorTo(5))
	tape.SetCurrentByte(42)

	tape.Load([]byte{9})

	assert.Equal(t, 0, tape.Cursor())
	assert.Equal(t, byte(9), tape.CurrentByte())
}

func TestTapeLoadEmpty(t *testing.T) {
	tape := NewTape(8)
	tape.Load(nil)

	assert.Equal(t, 0, tape.Cursor())
	assert.Equal(t, byte(0), tape.CurrentByte())
}

func TestTapeLoadCopiesData(t *testing.T) {
	data := []byte{1, 2, 3}
	tape := NewTape(0)
	tape.Load(data)

	data[0] = 99
	assert.Equal(t, byte(1), tape.CurrentByte())
}

func TestTapeAdvance(t *testing.T) {
	tape := NewTape(0)
	tape.Load([]byte{10, 20, 30})

	// pre-increment read: returns the byte at the old cursor position
	assert.Equal(t, byte(10), tape.Advance())
	assert.Equal(t, byte(20), tape.Advance())
	assert.Equal(t, byte(30), tape.Advance())
	assert.Equal(t, 3, tape.Cursor())

	// the sequence never ends, the tape grows with zero bytes
	for i := 0; i < 50; i++ {
		assert.Equal(t, byte(0), tape.Advance())
	}
	assert.Equal(t, 53, tape.Cursor())
}
