package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/models"
)

func TestMarkdown_Plain(t *testing.T) {
	out, err := Markdown("# Title", 80, true)
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}

func TestMarkdown_Styled(t *testing.T) {
	out, err := Markdown("# Vault Created\n\n- notes/\n", 80, false)
	require.NoError(t, err)
	assert.Contains(t, out, "Vault Created")
	assert.Contains(t, out, "notes/")
}

func TestTemplateTable(t *testing.T) {
	var buf bytes.Buffer
	TemplateTable(&buf, []catalog.Template{
		{Key: "minimal", Name: "Minimal Starter", Folders: []string{"notes", "daily"}, Features: []string{"Simple daily notes"}},
	})
	out := buf.String()
	assert.Contains(t, out, "minimal")
	assert.Contains(t, out, "Minimal Starter")
	assert.Contains(t, out, "Simple daily notes")
}

func TestHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	HistoryTable(&buf, nil)
	assert.Contains(t, buf.String(), "No vaults recorded yet")

	buf.Reset()
	HistoryTable(&buf, []models.VaultRecord{{
		Name: "Brain", Template: "pkm", Mode: models.ModeTemplate, Path: "/v/Brain", CreatedAt: time.Now(),
	}})
	assert.Contains(t, buf.String(), "Brain")
	assert.Contains(t, buf.String(), "/v/Brain")
}
