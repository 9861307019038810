package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPresets_None(t *testing.T) {
	presets, err := LoadPresets(Default())
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestLoadPresets_FromConfigFile(t *testing.T) {
	p := writeTempConfig(t, `log-level: info
presets:
  rag:
    description: Retrieval pipelines
    use-cases: [RAG]
`)

	cfg, err := Load(nil, p)
	require.NoError(t, err)

	presets, err := LoadPresets(cfg)
	require.NoError(t, err)
	require.Contains(t, presets, "rag")
	assert.Equal(t, []string{"RAG"}, presets["rag"].UseCases)
	assert.Equal(t, "Retrieval pipelines", presets["rag"].Description)
}

func TestLoadPresets_PresetsFileOverridesConfig(t *testing.T) {
	cfgPath := writeTempConfig(t, `presets:
  rag:
    use-cases: [RAG]
  safety:
    risk-categories: [Safety]
`)

	extra := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(extra, []byte(`presets:
  rag:
    use-cases: [Chatbot]
`), 0o600))

	cfg := Default()
	cfg.ConfigFile = cfgPath
	cfg.PresetsFile = extra

	presets, err := LoadPresets(cfg)
	require.NoError(t, err)
	assert.Len(t, presets, 2)
	assert.Equal(t, []string{"Chatbot"}, presets["rag"].UseCases)
	assert.Equal(t, []string{"Safety"}, presets["safety"].RiskCategories)
}

func TestLoadPresets_MissingPresetsFile(t *testing.T) {
	cfg := Default()
	cfg.PresetsFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := LoadPresets(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading presets file")
}

func TestLoadPresets_MalformedConfigPresets(t *testing.T) {
	cfg := Default()
	cfg.ConfigFile = writeTempConfig(t, "presets: [not, a, map]\n")

	_, err := LoadPresets(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing presets")
}
