package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/specdock/specdock/internal/cli/errors"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show specdock daemon status",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		formatter := newFormatter()

		health, err := c.GetHealth()
		if err != nil {
			fmt.Println(formatter.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if jsonOutput {
			data, _ := json.MarshalIndent(health, "", "  ")
			fmt.Println(string(data))
		} else {
			color.Cyan("SpecDock Daemon Status:")
			fmt.Printf("  Status:  %s\n", health.Status)
			fmt.Printf("  Message: %s\n", health.Message)
			fmt.Printf("  Server:  %s\n", serverURL)
			if list, err := c.ListSpecs(); err == nil {
				fmt.Printf("  Specifications: %d\n", list.Count)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
