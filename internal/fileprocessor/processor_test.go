package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/bfgorun/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.bf")
	assert.NoError(t, os.WriteFile(file, []byte("++."), 0o644))

	tests := []struct {
		name string
		opts options.Program
		want string
	}{
		{"eval text", options.Program{Eval: "+-"}, "+-"},
		{"program file", options.Program{Input: file}, "++."},
		{"eval wins over file", options.Program{Eval: "+", Input: file}, "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSource(tt.opts)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := ReadSource(options.Program{Input: filepath.Join(t.TempDir(), "missing.bf")})
	assert.Error(t, err)
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "eval", SourceName(options.Program{Eval: "+"}))
	assert.Equal(t, "test.bf", SourceName(options.Program{Input: "test.bf"}))
	assert.Equal(t, "stdin", SourceName(options.Program{}))
}

func TestProcessFileRun(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.bin")
	opts := options.Program{
		Eval:   "++.",
		Output: output,
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, []byte{2}, data)
}

func TestProcessFileRunError(t *testing.T) {
	opts := options.Program{
		Eval:   "]",
		Output: filepath.Join(t.TempDir(), "out.bin"),
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.Error(t, err)
	assert.ErrorContains(t, err, "eval")
	assert.ErrorContains(t, err, "unmatched ]")
}

func TestProcessFileDisassemble(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.lst")
	opts := options.Program{
		Eval:        "+.",
		Output:      output,
		Disassemble: true,
		NoOffsets:   true,
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "+  inc    ; $2b\n.  out    ; $2e\n", string(data))
}
