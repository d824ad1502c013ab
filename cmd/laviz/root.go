package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/laviz/internal/logger"
)

var rootFlags = struct {
	debug   *bool
	noColor *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "laviz",
	Short: "Build a canonical LR(1) parser and expose every artifact",
	Long: `laviz builds a canonical LR(1) parser from a context-free grammar and
exposes every intermediate artifact: FIRST sets, the LR(1) item graph, the
subset-construction DFA, the ACTION/GOTO tables, and a step-by-step parse
trace of an input token string.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(*rootFlags.debug, *rootFlags.noColor)
	},
}

func init() {
	rootFlags.debug = rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootFlags.noColor = rootCmd.PersistentFlags().Bool("no-color", false, "disable colored log output")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
