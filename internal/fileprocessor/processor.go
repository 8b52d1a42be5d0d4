// Package fileprocessor handles program loading and the execution workflow
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/bfgorun/internal/listing"
	"github.com/retroenv/bfgorun/internal/options"
	"github.com/retroenv/bfgorun/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete program processing workflow: reading
// the source, then executing it or printing its listing.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	source, err := ReadSource(opts)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	if opts.Disassemble {
		listingOptions := listing.Options{
			OffsetComments: !opts.NoOffsets,
			HexComments:    !opts.NoHexComments,
		}
		if err := listing.Write(writer, vm.Filter(source), listingOptions); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	machine := vm.New(logger, os.Stdin, writer)
	machine.LoadProgram(source)
	if err := machine.Run(ctx); err != nil {
		return fmt.Errorf("%s: %w", SourceName(opts), err)
	}
	return nil
}

// ReadSource returns the program source text selected by the options:
// the -e argument, the given file, or stdin.
func ReadSource(opts options.Program) (string, error) {
	if opts.Eval != "" {
		return opts.Eval, nil
	}
	if opts.Input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", opts.Input, err)
	}
	return string(data), nil
}

// SourceName returns the name used when reporting errors for the
// program source selected by the options.
func SourceName(opts options.Program) string {
	switch {
	case opts.Eval != "":
		return "eval"
	case opts.Input != "":
		return opts.Input
	default:
		return "stdin"
	}
}

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("bfgorun", log.String("version", buildinfo.Version(version, commit, date)))
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}
