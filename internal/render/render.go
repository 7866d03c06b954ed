// Package render formats reports for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/models"
)

// noMarginStyle removes glamour's document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// DefaultWidth is the word wrap width used for Markdown.
const DefaultWidth = 100

// Markdown renders md as styled terminal output. When plain is true md is
// returned unchanged.
func Markdown(md string, width int, plain bool) (string, error) {
	if plain {
		return md, nil
	}
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("render: markdown renderer: %w", err)
	}
	return r.Render(md)
}

// TemplateTable writes the template registry as a table.
func TemplateTable(w io.Writer, ts []catalog.Template) {
	t := newTable(w)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("FOLDERS"),
		text.FgHiCyan.Sprint("FEATURES"),
	})
	for _, tpl := range ts {
		t.AppendRow(table.Row{
			text.FgHiCyan.Sprint(tpl.Key),
			tpl.Name,
			len(tpl.Folders),
			strings.Join(tpl.Features, ", "),
		})
	}
	t.Render()
}

// HistoryTable writes vault history as a table.
func HistoryTable(w io.Writer, rs []models.VaultRecord) {
	if len(rs) == 0 {
		fmt.Fprintln(w, text.FgYellow.Sprint("No vaults recorded yet"))
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("CREATED"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("TEMPLATE"),
		text.FgHiCyan.Sprint("MODE"),
		text.FgHiCyan.Sprint("PATH"),
	})
	for _, r := range rs {
		t.AppendRow(table.Row{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Name,
			r.Template,
			r.Mode,
			r.Path,
		})
	}
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}
