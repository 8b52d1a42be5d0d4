package vm

// Tape is an unbounded one-dimensional byte array, realized lazily as a
// contiguous zero-initialized buffer. The cursor always addresses a valid
// index; moving it past the end grows the storage with zero bytes.
type Tape struct {
	storage []byte
	cursor  int
}

// NewTape returns a tape of the given initial length, zero-filled.
func NewTape(size int) *Tape {
	return &Tape{storage: make([]byte, size)}
}

// Cursor returns the current tape position.
func (t *Tape) Cursor() int {
	return t.cursor
}

// MoveCursorTo moves the cursor to position n, growing the storage as
// needed so that n is a valid index. Moving below position 0 returns a
// RangeError.
func (t *Tape) MoveCursorTo(n int) error {
	if n < 0 {
		return &RangeError{Position: n}
	}
	if n >= len(t.storage) {
		t.grow(n)
	}
	t.cursor = n
	return nil
}

// CurrentByte returns the byte under the cursor.
func (t *Tape) CurrentByte() byte {
	return t.storage[t.cursor]
}

// SetCurrentByte stores v at the cursor position, wrapping modulo 256.
func (t *Tape) SetCurrentByte(v int) {
	t.storage[t.cursor] = byte(v)
}

// Load replaces the storage with a copy of data and resets the cursor
// to position 0.
func (t *Tape) Load(data []byte) {
	t.storage = make([]byte, len(data))
	copy(t.storage, data)
	t.cursor = 0
	if len(t.storage) == 0 {
		t.grow(0)
	}
}

// Advance returns the byte under the cursor and moves the cursor one
// position forward. Repeated calls yield the byte sequence from the
// cursor onward; the sequence never ends as the tape grows to satisfy
// any index.
func (t *Tape) Advance() byte {
	b := t.storage[t.cursor]
	_ = t.MoveCursorTo(t.cursor + 1) // target is positive, cannot fail
	return b
}

// grow extends the storage so that index n becomes valid, at least
// doubling the length to keep repeated forward motion amortized O(1).
func (t *Tape) grow(n int) {
	size := len(t.storage) * 2
	if size <= n {
		size = n + 1
	}
	grown := make([]byte, size)
	copy(grown, t.storage)
	t.storage = grown
}
