package cmd

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/wish/core"
	"github.com/josephlewis42/wish/core/logger"
	"github.com/josephlewis42/wish/core/vos"
	"github.com/spf13/cobra"
)

var commandLine string

// runCmd runs the interpreter against the local terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interpreter.",
	Long: `Start the interpreter, reading lines from standard input until the
exit command or the end of input. With -c a single line is run instead.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		runLogger := log.New(cmd.ErrOrStderr(), "[wish] ", 0)
		cfg, err := loadConfigOrDefault(runLogger)
		if err != nil {
			return err
		}

		logFd, err := cfg.OpenAppLog()
		if err != nil {
			return err
		}
		defer logFd.Close()
		events := logger.NewJSONLinesLogRecorder(logFd).NewSession()

		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		useColor := cfg.ColorEnabled(!color.NoColor)
		sh, err := core.NewShell(core.Options{
			Config:   cfg,
			Fs:       vos.NewOsFs(),
			Executor: vos.OSExecutor{},
			IO:       vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
			Events:   events,
			Dir:      wd,
			Environ:  os.Environ(),
			Color:    &useColor,
		})
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("command") {
			sh.RunLine(commandLine)
			return nil
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:       cfg.Prompt,
			HistoryLimit: readlineHistoryLimit(cfg.HistoryLimit),
			Stdin:        readline.NewCancelableStdin(cmd.InOrStdin()),
			Stdout:       cmd.OutOrStdout(),
			Stderr:       cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("couldn't open terminal: %w", err)
		}
		defer rl.Close()
		sh.Readline = rl

		sh.Run(rl)
		return nil
	},
}

// readlineHistoryLimit converts history_limit to readline's convention,
// where 0 means 500 entries and negative disables history.
func readlineHistoryLimit(limit int) int {
	if limit == 0 {
		return math.MaxInt32
	}
	return limit
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
}
