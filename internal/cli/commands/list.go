package commands

import (
	"fmt"
	"os"

	"github.com/specdock/specdock/internal/cli/errors"
	"github.com/specdock/specdock/internal/domain/registry"
	"github.com/specdock/specdock/internal/logger"
	"github.com/spf13/cobra"
)

var listDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available specifications",
	Run: func(cmd *cobra.Command, args []string) {
		formatter := newFormatter()

		if listDir != "" {
			// Scan the directory directly, no daemon needed
			log := logger.Init("warn", "text")
			idx := registry.Scan(listDir, log)
			formatter.FormatLocalSpecs(idx)
			return
		}

		c := newClient()
		list, err := c.ListSpecs()
		if err != nil {
			fmt.Println(formatter.FormatError(errors.Classify(err)))
			os.Exit(1)
		}
		formatter.FormatSpecs(list)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDir, "dir", "", "list specs from a local directory instead of the daemon")
}
