package inference

import (
	"path/filepath"
	"strings"
)

func InferCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}

	first := args[0]
	if strings.HasPrefix(first, "-") {
		return "", args
	}

	// A spec file extension means the user wants a conversion:
	// "specdock-cli petstore.yaml" behaves like "convert petstore.yaml".
	switch strings.ToLower(filepath.Ext(first)) {
	case ".yaml", ".yml", ".json":
		return "convert", args
	}

	// Bare names could map to 'info' once we consult the daemon's
	// spec list, but guessing here would shadow unknown subcommands.

	return "", args
}
