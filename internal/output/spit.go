// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/ecsanywhere/ecsanywhere/internal/config"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Column selects a row key for the table and names its title.
type Column struct {
	Key   string
	Title string
}

// Options controls rendering.
type Options struct {
	Format  string
	Titles  bool
	Color   bool
	Sort    string
	Padding int
	Header  string
	Footer  string
}

// FromCommand reads the global rendering flags off cmd.
func FromCommand(cmd *cli.Command) Options {
	o := Options{
		Format:  cmd.String("output"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Sort:    cmd.String("sort"),
		Padding: int(cmd.Int("padding")),
	}
	if h, ok := cmd.Metadata["header"].(string); ok {
		o.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		o.Footer = f
	}
	return o
}

// InterfaceToString converts primitive or composite values to a string. A zero
// value renders as the optional emptyValue.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(b)
	}
}

// Render sorts rows and writes them in the requested format. raw is what the
// raw format writes verbatim; when nil the rows are written as indented JSON.
func Render(w io.Writer, rows []map[string]interface{}, cols []Column, raw []byte, o Options) error {
	if w == nil {
		w = os.Stdout
	}

	if o.Format == FormatRaw && raw != nil {
		_, err := w.Write(raw)
		return err
	}

	SortDataset(rows, o.Sort)

	switch o.Format {
	case FormatJSON, FormatRaw:
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case FormatText, "":
		TableWriter(w, rows, cols, o)
		return nil
	}
	return fmt.Errorf("unknown output format %q", o.Format)
}

// TableWriter renders rows as an aligned borderless table.
func TableWriter(w io.Writer, rows []map[string]interface{}, cols []Column, o Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if o.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, InterfaceToString(r[c.Key], "-"))
		}
		cells = append(cells, row)
	}

	if o.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(o.Header))
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(o.Padding)
			}
			return style
		}).
		Rows(cells...)

	if o.Titles {
		titles := make([]string, len(cols))
		for i, c := range cols {
			titles[i] = c.Title
			if titles[i] == "" {
				titles[i] = c.Key
			}
		}
		t = t.Headers(titles...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if o.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(o.Footer))
	}
}

// getColors returns the table colors. Configured colors win; otherwise the
// defaults follow the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolve := func(key, light, dark string) color.Color {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolve(key+".title", "#b08800", "#f6be00")
	even = resolve(key+".even", "#333333", "#ffffff")
	odd = resolve(key+".odd", "#0088a0", "#00c8f0")
	return
}
