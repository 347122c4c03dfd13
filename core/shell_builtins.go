package core

import (
	"fmt"
	"sort"

	"github.com/josephlewis42/wish/core/logger"
	"github.com/josephlewis42/wish/core/vos"
	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command that runs inside the interpreter because it
// changes interpreter state.
type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames returns the sorted names of every builtin.
func BuiltinNames() []string {
	var names []string
	for k := range AllBuiltins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// TryDispatch runs args as a builtin if args[0] names one. It returns false
// if the command isn't a builtin and must be treated as external.
func (s *Shell) TryDispatch(args []string) bool {
	if len(args) == 0 {
		return false
	}

	builtin, ok := AllBuiltins[args[0]]
	if !ok {
		return false
	}

	s.lastRet = builtin.Main(s, args)
	s.events.Record(logger.EventBuiltin, logger.Fields{
		logger.FieldCommand: args,
		logger.FieldStatus:  s.lastRet,
	})
	return true
}

// usageError reports a builtin invoked with the wrong arguments.
func (s *Shell) usageError(args []string, msg string) int {
	err := fmt.Errorf("%w: %s", ErrUsage, msg)
	s.errorf(args[0], "%v", err)
	s.events.Record(logger.EventInvalidInvocation, logger.Fields{
		logger.FieldCommand: args,
		logger.FieldError:   err,
	})
	return 1
}

// Cd is the cd shell builtin, it takes exactly one directory.
func Cd(s *Shell, args []string) int {
	if len(args) != 2 {
		return s.usageError(args, "cd DIRECTORY")
	}

	dir, err := vos.Chdir(s.fs, s.dir, args[1])
	if err != nil {
		s.errorf(args[0], "%v", err)
		s.events.Record(logger.EventInvalidInvocation, logger.Fields{
			logger.FieldCommand: args,
			logger.FieldError:   err,
		})
		return 1
	}

	s.dir = dir
	fmt.Fprintf(s.stdout, "Now in %s\n", s.dir)
	return 0
}

// Path replaces the search path with its arguments. No arguments leaves the
// search path empty so nothing external resolves.
func Path(s *Shell, args []string) int {
	s.path = append([]string{}, args[1:]...)
	return 0
}

// History prints or clears the lines read so far.
func History(s *Shell, args []string) int {
	opts := getopt.New()
	clearOpt := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.stderr
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "Display or manipulate the history list.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		if err != nil {
			return 1
		}
		return 0
	}

	if *clearOpt {
		if s.Readline != nil {
			s.Readline.Operation.ResetHistory()
		}
		s.history = nil
		return 0
	}

	for i, line := range s.history {
		fmt.Fprintf(s.stdout, "% 5d  %s\n", i+1, line)
	}
	return 0
}

// Help lists the builtins.
func Help(s *Shell, args []string) int {
	w := s.stdout
	fmt.Fprintln(w, "wish, the wisconsin shell")
	fmt.Fprintln(w, "These shell commands are defined internally. Everything else is")
	fmt.Fprintln(w, "looked up in the search path set by `path'.")
	fmt.Fprintf(w, "Separate commands with %q to run them at the same time.\n", s.config.Delimiter)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtins:")
	for _, name := range BuiltinNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintf(w, "  %s\n", s.config.ExitCommand)

	return 0
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["path"] = ShellBuiltinFunc(Path)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
}
