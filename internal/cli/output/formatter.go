package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/specdock/specdock/internal/cli/client"
	"github.com/specdock/specdock/internal/cli/errors"
	"github.com/specdock/specdock/internal/domain/registry"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

type Formatter struct {
	format OutputFormat
	color  bool
}

func NewFormatter(format OutputFormat, useColor bool) *Formatter {
	return &Formatter{
		format: format,
		color:  useColor,
	}
}

func (f *Formatter) FormatError(err errors.ClassifiedError) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(err, "", "  ")
		return string(data)
	}

	var msg string
	if f.color {
		msg = color.RedString("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\n" + color.YellowString("Hint: %s", err.Hint)
		}
	} else {
		msg = fmt.Sprintf("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\nHint: " + err.Hint
		}
	}
	return msg
}

func (f *Formatter) FormatSpecs(list *client.SpecList) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(list, "", "  ")
		fmt.Println(string(data))
		return ""
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Name", "File", "Type", "Size", "Modified"}),
	)

	for _, s := range list.Specifications {
		size := "-"
		modified := "-"
		if s.Error != "" {
			modified = "error: " + s.Error
		} else if s.Exists {
			size = humanize.Bytes(uint64(s.SizeBytes))
			if s.ModifiedTime != nil {
				modified = humanize.Time(time.Unix(int64(*s.ModifiedTime), 0))
			}
		} else {
			modified = "missing"
		}
		table.Append([]string{s.Name, s.FileName, s.FileType, size, modified})
	}

	table.Render()
	return "" // tablewriter writes directly to stdout
}

// FormatLocalSpecs renders an index scanned straight from disk, without
// talking to the daemon.
func (f *Formatter) FormatLocalSpecs(idx *registry.Index) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(idx.Entries(), "", "  ")
		fmt.Println(string(data))
		return ""
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Name", "File", "Type"}),
	)

	for _, e := range idx.Entries() {
		table.Append([]string{e.Name, e.FileName, e.Ext})
	}

	table.Render()
	return ""
}
