package cmd

import (
	"fmt"
	"os"

	"github.com/josephlewis42/wish/core/vos"
	"github.com/spf13/cobra"
)

var whichPath []string

var whichCmd = &cobra.Command{
	Use:   "which PROGRAM...",
	Short: "Locate programs the way the interpreter would.",
	Long: `Resolve each program against the search path, printing the first
executable match. The search path defaults to the configured default_path.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		snap := vos.Snapshot{Path: whichPath}
		if !cmd.Flags().Changed("path") {
			cfg, err := loadConfigOrDefault(discardLogger)
			if err != nil {
				return err
			}
			snap.Path = cfg.DefaultPath
		}

		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		snap.Dir = wd

		missing := 0
		for _, program := range args {
			res, err := vos.LookPath(vos.NewOsFs(), snap, program)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: command not found\n", program)
				missing++
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
		}

		if missing > 0 {
			return fmt.Errorf("%d of %d programs not found", missing, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whichCmd)
	whichCmd.Flags().StringSliceVar(&whichPath, "path", nil, "search path to use instead of the configured one")
}
