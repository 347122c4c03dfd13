package core

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/wish/core/config"
	"github.com/josephlewis42/wish/core/logger"
	"github.com/josephlewis42/wish/core/shell"
	"github.com/josephlewis42/wish/core/vos"
	"github.com/juju/ratelimit"
	"golang.org/x/sync/errgroup"
)

const (
	// StatusNotFound is the status of a command that didn't resolve.
	StatusNotFound = 127
	// StatusSpawnFailure is the status of a command whose process couldn't start.
	StatusSpawnFailure = 126
)

var (
	// ErrEmptyCommand marks a blank command between delimiters.
	ErrEmptyCommand = errors.New("empty command")
	// ErrUsage marks a builtin invoked with the wrong arguments.
	ErrUsage = errors.New("usage")

	colorError  = color.New(color.FgRed)
	colorPrompt = color.New(color.FgGreen, color.Bold)
)

// LineReader supplies one line per call, without the line terminator.
// io.EOF means there is no more input.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

var _ LineReader = (*readline.Instance)(nil)

// Options configure a Shell.
type Options struct {
	Config   *config.Configuration
	Fs       vos.VFS
	Executor vos.Executor
	IO       vos.VIO
	Events   *logger.SessionLogger
	// Dir is the starting working directory, it must be absolute.
	Dir string
	// Environ is passed to spawned processes with PWD kept in sync with the
	// working directory. Nil lets processes inherit the host environment.
	Environ []string
	// Color forces colorized output on or off, nil defers to the config
	// assuming the output isn't a terminal.
	Color *bool
}

// Shell is the command interpreter. It owns the working directory and the
// search path; only builtins change them, and only between spawns.
type Shell struct {
	// Readline is set when reading from a terminal so history can be reset.
	Readline *readline.Instance

	config   *config.Configuration
	fs       vos.VFS
	executor vos.Executor
	io       vos.VIO
	stdout   io.Writer
	stderr   io.Writer
	events   *logger.SessionLogger
	limiter  *ratelimit.Bucket
	color    bool

	dir     string
	path    []string
	env     *vos.MapEnv
	lastRet int
	history []string

	// Set to true to quit the shell
	Quit bool
}

// NewShell creates an interpreter with the configured default search path.
func NewShell(opts Options) (*Shell, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Fs == nil {
		opts.Fs = vos.NewOsFs()
	}
	if opts.Executor == nil {
		opts.Executor = vos.OSExecutor{}
	}
	if opts.IO == nil {
		opts.IO = vos.NewNullIO()
	}
	if opts.Events == nil {
		opts.Events = logger.NewNopLogger().NewSession()
	}

	dir, err := vos.Chdir(opts.Fs, "/", opts.Dir)
	if err != nil {
		return nil, err
	}

	s := &Shell{
		config:   opts.Config,
		fs:       opts.Fs,
		executor: opts.Executor,
		io:       opts.IO,
		stdout:   vos.NewSyncWriter(opts.IO.Stdout()),
		stderr:   vos.NewSyncWriter(opts.IO.Stderr()),
		events:   opts.Events,
		color:    opts.Config.ColorEnabled(false),
		dir:      dir,
		path:     append([]string(nil), opts.Config.DefaultPath...),
	}
	if opts.Environ != nil {
		s.env = vos.NewMapEnvFromEnvList(opts.Environ)
	}
	if opts.Color != nil {
		s.color = *opts.Color
	}
	if rate := opts.Config.SpawnRate; rate > 0 {
		s.limiter = ratelimit.NewBucketWithRate(rate, opts.Config.SpawnBurst)
	}

	return s, nil
}

// Dir returns the working directory.
func (s *Shell) Dir() string {
	return s.dir
}

// SearchPath returns a copy of the search path.
func (s *Shell) SearchPath() []string {
	return append([]string(nil), s.path...)
}

// History returns a copy of the lines read so far.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

func (s *Shell) snapshot() vos.Snapshot {
	snap := vos.Snapshot{Dir: s.dir, Path: s.path}
	if s.env != nil {
		snap.Env = s.env.EnvironWith(vos.EnvPWD, s.dir)
	}
	return snap.Clone()
}

func (s *Shell) prompt() string {
	if s.color {
		return colorPrompt.Sprint(s.config.Prompt)
	}
	return s.config.Prompt
}

// isExit reports whether the line, ignoring surrounding whitespace, is the
// exit command. "exit & ls" is two commands, not an exit.
func (s *Shell) isExit(line string) bool {
	return shell.TrimSpace(line) == s.config.ExitCommand
}

func (s *Shell) addHistory(line string) {
	s.history = append(s.history, line)
	if limit := s.config.HistoryLimit; limit > 0 && len(s.history) > limit {
		s.history = append([]string(nil), s.history[len(s.history)-limit:]...)
	}
}

// Run reads and executes lines until the exit command or the end of input.
func (s *Shell) Run(input LineReader) int {
	for !s.Quit {
		input.SetPrompt(s.prompt())
		line, err := input.Readline()

		switch {
		case err == io.EOF:
			return 0 // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			return 0

		case s.isExit(line):
			s.Quit = true

		default:
			s.addHistory(line)
			s.RunLine(line)
		}
	}
	return 0
}

// errorf reports a recoverable error for a single command.
func (s *Shell) errorf(name string, format string, a ...interface{}) {
	msg := fmt.Sprintf("wish: %s: %s", name, fmt.Sprintf(format, a...))
	if s.color {
		msg = colorError.Sprint(msg)
	}
	fmt.Fprintln(s.stderr, msg)
}

// CommandKind says how a command was dispatched.
type CommandKind int

const (
	// KindEmpty is a blank command between delimiters, it is skipped.
	KindEmpty CommandKind = iota
	// KindBuiltin ran inline in the interpreter.
	KindBuiltin
	// KindExternal was resolved on the search path and spawned.
	KindExternal
)

func (k CommandKind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindExternal:
		return "external"
	default:
		return "empty"
	}
}

// CommandResult is the outcome of one command of a line.
type CommandResult struct {
	// Command is the trimmed command text.
	Command string
	// Args is the argument vector, Args[0] is the program name.
	Args []string
	Kind CommandKind
	// Path is the resolved program, set for external commands that resolved.
	Path string
	// Status is the builtin or process exit status.
	Status int
	// Err is set if the command failed to resolve, start or parse.
	Err error
}

// LineResult is the outcome of every command of a line.
type LineResult struct {
	Commands []*CommandResult
	// Joined is the number of units spawned and waited for.
	Joined int
}

// RunLine splits the line into commands and dispatches them left to right.
// Builtins run inline, everything else runs in its own unit that sees the
// working directory and search path as they were when it was spawned.
// RunLine returns once every unit it spawned has finished.
func (s *Shell) RunLine(line string) *LineResult {
	s.events.Record(logger.EventLine, logger.Fields{logger.FieldLine: line})

	commands := shell.SplitCommands(line, s.config.Delimiter)
	result := &LineResult{Commands: make([]*CommandResult, len(commands))}

	var units errgroup.Group
	for i, command := range commands {
		cr := &CommandResult{
			Command: command,
			Args:    shell.Tokenize(command),
		}
		result.Commands[i] = cr

		if len(cr.Args) == 0 {
			cr.Err = ErrEmptyCommand
			continue
		}

		if s.TryDispatch(cr.Args) {
			cr.Kind = KindBuiltin
			cr.Status = s.lastRet
			continue
		}

		cr.Kind = KindExternal
		snap := s.snapshot()
		s.throttle()
		result.Joined++
		units.Go(func() error {
			s.runUnit(snap, cr)
			return nil
		})
	}

	// Units report their own failures, there's nothing to propagate.
	_ = units.Wait()
	return result
}

func (s *Shell) throttle() {
	if s.limiter != nil {
		s.limiter.Wait(1)
	}
}

// runUnit resolves and runs one external command.
func (s *Shell) runUnit(snap vos.Snapshot, cr *CommandResult) {
	name := cr.Args[0]

	execPath, err := vos.LookPath(s.fs, snap, name)
	if err != nil {
		cr.Err = err
		cr.Status = StatusNotFound
		s.errorf(name, "command not found")
		s.events.Record(logger.EventUnknownCommand, logger.Fields{
			logger.FieldCommand: cr.Args,
			logger.FieldError:   err,
		})
		return
	}
	cr.Path = execPath

	s.events.Record(logger.EventSpawn, logger.Fields{
		logger.FieldCommand: cr.Args,
		logger.FieldPath:    execPath,
	})

	status, err := s.executor.Run(&vos.Cmd{
		Path:   execPath,
		Args:   cr.Args,
		Dir:    snap.Dir,
		Env:    snap.Env,
		Stdin:  s.io.Stdin(),
		Stdout: s.io.Stdout(),
		Stderr: s.io.Stderr(),
	})
	if err != nil {
		cr.Err = err
		cr.Status = StatusSpawnFailure
		s.errorf(name, "%v", err)
		s.events.Record(logger.EventSpawnFailure, logger.Fields{
			logger.FieldCommand: cr.Args,
			logger.FieldPath:    execPath,
			logger.FieldError:   err,
		})
		return
	}

	cr.Status = status
	s.events.Record(logger.EventExit, logger.Fields{
		logger.FieldCommand: cr.Args,
		logger.FieldStatus:  status,
	})
}
