package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/specdock/specdock/internal/cli/errors"
	"github.com/specdock/specdock/internal/domain/document"
	"github.com/spf13/cobra"
)

var (
	convertTo  string
	convertOut string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a local specification between YAML and JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		formatter := newFormatter()

		out, err := convertFile(args[0], convertTo)
		if err != nil {
			fmt.Println(formatter.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if convertOut != "" {
			if err := os.WriteFile(convertOut, out, 0644); err != nil {
				fmt.Println(formatter.FormatError(errors.Classify(err)))
				os.Exit(1)
			}
			return
		}
		os.Stdout.Write(out)
	},
}

// convertFile reads one spec file and re-encodes it. An empty target
// format means the opposite of whatever the file already is.
func convertFile(path, to string) ([]byte, error) {
	source, err := document.ForExtension(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	var target document.Format
	switch to {
	case "":
		target = lo.Ternary(source == document.FormatYAML, document.FormatJSON, document.FormatYAML)
	case "yaml", "yml":
		target = document.FormatYAML
	case "json":
		target = document.FormatJSON
	default:
		return nil, fmt.Errorf("unknown target format %q", to)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Decode(data, source)
	if err != nil {
		return nil, err
	}
	out, err := document.Encode(doc, target)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target format: yaml or json (default: the other one)")
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "write to file instead of stdout")
}
