package commands

import (
	"os"
	"time"

	"github.com/specdock/specdock/internal/cli/client"
	"github.com/specdock/specdock/internal/cli/inference"
	"github.com/specdock/specdock/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	jsonOutput bool
	noColor    bool
	timeout    int
)

var rootCmd = &cobra.Command{
	Use:   "specdock-cli",
	Short: "SpecDock CLI - Browse and convert OpenAPI specifications",
	Long: `SpecDock serves OpenAPI specifications from a directory over HTTP,
with YAML/JSON conversion and metadata extraction built in.
This CLI talks to a running specdock daemon or works on local files directly.`,
}

func Execute() error {
	// Simple command inference - prepend inferred command to args
	if len(os.Args) > 1 {
		inferredCmd, _ := inference.InferCommand(os.Args[1:])
		if inferredCmd != "" {
			// Insert the inferred command after the program name
			newArgs := make([]string, 0, len(os.Args)+1)
			newArgs = append(newArgs, os.Args[0])
			newArgs = append(newArgs, inferredCmd)
			newArgs = append(newArgs, os.Args[1:]...)
			os.Args = newArgs
		}
	}
	return rootCmd.Execute()
}

func newClient() *client.Client {
	return client.New(serverURL, time.Duration(timeout)*time.Millisecond)
}

func newFormatter() *output.Formatter {
	var fmtMode output.OutputFormat = output.FormatText
	if jsonOutput {
		fmtMode = output.FormatJSON
	}
	return output.NewFormatter(fmtMode, !noColor)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8001", "base URL of the specdock daemon")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 30000, "request timeout in milliseconds")
}
