package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/specdock/specdock/internal/cli/errors"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show metadata for one specification",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		formatter := newFormatter()

		info, err := c.GetSpecInfo(args[0])
		if err != nil {
			fmt.Println(formatter.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if jsonOutput {
			data, _ := json.MarshalIndent(info, "", "  ")
			fmt.Println(string(data))
		} else {
			color.Cyan("Specification: %s", info.SpecName)
			fmt.Printf("  Title:       %s\n", info.Title)
			fmt.Printf("  Version:     %s\n", info.Version)
			fmt.Printf("  Description: %s\n", info.Description)
			fmt.Printf("  Endpoints:   %d\n", info.Endpoints)
			if paths, ok := info.EndpointPaths.([]interface{}); ok {
				for _, p := range paths {
					fmt.Printf("    - %v\n", p)
				}
			}
			fmt.Printf("  Schemas:          %d\n", info.Schemas)
			fmt.Printf("  Security schemes: %d\n", info.SecuritySchemes)
			for _, s := range info.Servers {
				if m, ok := s.(map[string]interface{}); ok {
					fmt.Printf("  Server: %v\n", m["url"])
				}
			}
			fmt.Printf("  File: %s (%s, %s)\n", info.FileInfo.Name, info.FileInfo.Type, humanize.Bytes(uint64(info.FileInfo.SizeBytes)))
			fmt.Printf("  YAML: %s\n", info.URLs.YAML)
			fmt.Printf("  JSON: %s\n", info.URLs.JSON)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
