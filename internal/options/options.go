// Package options contains the program options.
package options

// Program options of the interpreter.
type Program struct {
	Input  string // program file to execute, empty means stdin
	Eval   string // program text passed on the command line
	Output string // output file, empty means stdout

	Disassemble bool
	Debug       bool
	Quiet       bool

	NoHexComments bool
	NoOffsets     bool
}
