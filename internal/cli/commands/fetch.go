package commands

import (
	"fmt"
	"os"

	"github.com/specdock/specdock/internal/cli/errors"
	"github.com/spf13/cobra"
)

var (
	fetchFormat string
	fetchOut    string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <name>",
	Short: "Fetch a specification from the daemon",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		formatter := newFormatter()

		if fetchFormat != "yaml" && fetchFormat != "json" {
			fmt.Printf("Error: Invalid format %q. Use yaml or json\n", fetchFormat)
			os.Exit(1)
		}

		body, err := c.FetchSpec(args[0], fetchFormat)
		if err != nil {
			fmt.Println(formatter.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if fetchOut != "" {
			if err := os.WriteFile(fetchOut, body, 0644); err != nil {
				fmt.Println(formatter.FormatError(errors.Classify(err)))
				os.Exit(1)
			}
			return
		}
		os.Stdout.Write(body)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "yaml", "format to fetch: yaml or json")
	fetchCmd.Flags().StringVarP(&fetchOut, "output", "o", "", "write to file instead of stdout")
}
