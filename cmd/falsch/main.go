package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/falsch-lang/falsch"
)

// Exit code constants
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitEvalError        = 3
)

var noColor bool

// shouldUseColor determines if color output should be used.
// Respects --no-color flag and the NO_COLOR environment variable.
func shouldUseColor(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// printDiagnostic writes one diagnostic per error event to stderr, with
// source location and caret when the error carries them.
func printDiagnostic(err error, useColor bool) {
	var ferr *falsch.Error
	if errors.As(err, &ferr) {
		fmt.Fprintln(os.Stderr, ferr.Pretty(useColor))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func main() {
	exitCode := ExitSuccess

	rootCmd := &cobra.Command{
		Use:     "falsch <program>",
		Short:   "Run a falsch program",
		Long:    "falsch interprets a stack-oriented concatenative program file,\nreading characters from stdin and writing to stdout.",
		Version: falsch.Version,
		Args:    cobra.ExactArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			useColor := shouldUseColor(noColor)

			prog, err := falsch.FromFile(args[0])
			if err != nil {
				printDiagnostic(err, useColor)
				exitCode = ExitIOError
				return nil
			}

			if err := prog.ExecuteWriter(os.Stdin, os.Stdout); err != nil {
				printDiagnostic(err, useColor)
				exitCode = ExitEvalError
				return nil
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = ExitInvalidArguments
	}
	os.Exit(exitCode)
}
