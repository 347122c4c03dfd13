// Package shell turns raw input lines into independently dispatchable
// commands and argument vectors.
//
// The grammar is deliberately tiny: a line is split on the concurrency
// delimiter into commands, and each command is split on whitespace into
// arguments. There is no quoting, escaping, expansion or redirection.
package shell

import (
	"strings"
	"unicode"
)

// DefaultDelimiter separates commands that run at the same time.
const DefaultDelimiter = "&"

// SplitCommands splits line on delim and trims surrounding whitespace from
// each piece. Pieces that end up empty are kept so callers see every
// position in the line, e.g. "ls & & pwd" yields ["ls", "", "pwd"].
//
// An empty delim falls back to DefaultDelimiter.
func SplitCommands(line, delim string) []string {
	if delim == "" {
		delim = DefaultDelimiter
	}

	pieces := strings.Split(line, delim)
	commands := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		commands = append(commands, TrimSpace(piece))
	}
	return commands
}

// TrimSpace returns the slice of s with leading and trailing whitespace
// removed. Interior whitespace is untouched.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, unicode.IsSpace)
}

// Tokenize splits a single command into its argument vector
// {program, arg1, ..., argN}. Runs of whitespace never produce empty
// arguments.
//
// A command made only of whitespace yields an empty vector; callers must
// check the length before treating element 0 as a program name.
func Tokenize(command string) []string {
	return strings.FieldsFunc(command, unicode.IsSpace)
}
