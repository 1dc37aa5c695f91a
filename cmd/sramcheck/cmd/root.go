// Package cmd provides the command-line interface of sramcheck.
package cmd

import (
	"context"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sramcheck",
		Short: "sramcheck writes, reads back and verifies a QSPI pseudo-SRAM.",
		Long: `sramcheck writes, reads back and verifies a simulated QSPI ` +
			`pseudo-SRAM over its single-lane and quad-lane paths. Flags can ` +
			`also be set with SRAMCHECK_* environment variables or a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyEnv(cmd.Flags())
		},
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newMCSCmd())

	return root
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := loadDotEnv(".env"); err != nil {
		rootCmd.PrintErrln("Error:", err)
		atexit.Exit(1)
	}

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// loadDotEnv loads path into the environment. A missing file is not an
// error. Variables that are already set win.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "loading %s", path)
	}

	return nil
}
