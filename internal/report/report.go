// Package report renders Markdown summaries of vault operations.
package report

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/vault"
)

// MaxHotkeys bounds the hotkeys listed in analysis reports.
const MaxHotkeys = 10

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("report").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl"))

func funcMap() template.FuncMap {
	f := sprig.TxtFuncMap()
	f["dailySteps"] = dailySteps
	return f
}

// dailySteps suggests a daily routine for a template.
func dailySteps(key string) []string {
	switch key {
	case "pkm":
		return []string{
			"**Morning**: Create daily note (Cmd+Shift+D)",
			"**During day**: Quick capture ideas (Cmd+Q)",
			"**Reading**: Highlights sync via Readwise",
			"**Evening**: Process inbox, create permanent notes",
			"**Weekly**: Review and organize",
		}
	case "research":
		return []string{
			"**New source**: Create literature note",
			"**While reading**: Highlight in Readwise",
			"**After reading**: Process into permanent notes",
			"**Writing**: Link notes in your drafts",
			"**Weekly**: Update bibliography",
		}
	}
	return []string{
		"Start with daily note",
		"Capture ideas as they come",
		"Review and organize weekly",
	}
}

type inspectionView struct {
	*vault.Inspection
	TopHotkeys []models.HotkeyEntry
}

func newInspectionView(in *vault.Inspection) inspectionView {
	top := in.Analysis.Hotkeys
	if len(top) > MaxHotkeys {
		top = top[:MaxHotkeys]
	}
	return inspectionView{Inspection: in, TopHotkeys: top}
}

// Created summarises a freshly built vault.
func Created(c *vault.Created) (string, error) {
	return render("created.md.tmpl", c)
}

// Adopted summarises an adopt operation.
func Adopted(a *vault.Adopted) (string, error) {
	return render("adopted.md.tmpl", struct {
		*vault.Adopted
		View inspectionView
	}{a, newInspectionView(&a.Inspection)})
}

// Analysis summarises an external configuration.
func Analysis(in *vault.Inspection) (string, error) {
	return render("analysis.md.tmpl", newInspectionView(in))
}

// Templates lists the template registry.
func Templates(ts []catalog.Template) (string, error) {
	return render("templates.md.tmpl", ts)
}

// History lists recorded vaults.
func History(rs []models.VaultRecord) (string, error) {
	return render("history.md.tmpl", rs)
}

// Bootstrap is the vault creation wizard message.
func Bootstrap(location string, ts []catalog.Template) (string, error) {
	return render("bootstrap.md.tmpl", struct {
		Location  string
		Templates []catalog.Template
	}{location, ts})
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("report: render %s: %w", name, err)
	}
	return b.String(), nil
}
