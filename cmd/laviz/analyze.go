package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/laviz"
)

var analyzeFlags = struct {
	input *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "analyze <grammar file path>",
		Short:   "Analyze a grammar and parse an input token string",
		Example: `  laviz analyze grammar.txt --input "id + id * id"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runAnalyze,
	}
	analyzeFlags.input = cmd.Flags().StringP("input", "i", "", "input token string (whitespace-separated)")
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read the grammar file %s: %w", args[0], err)
	}

	bundle, err := laviz.Analyze(string(src), *analyzeFlags.input)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(bundle, "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))

	return nil
}
