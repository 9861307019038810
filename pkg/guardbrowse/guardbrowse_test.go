package guardbrowse

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Name,Description,Use Cases,Risk Category,Content Type,Infrastructure
ToxicLanguage,Flags toxic text,"Chatbot, RAG",Safety,Text,ML
SecretsPresent,Detects secrets,Agents,HighRisk,"Text, Code",Regex
NSFWImage,Blocks NSFW images,RAG,Privacy,Image,ML
`

func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "validators.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	return path
}

func TestFilter_NoOptions(t *testing.T) {
	res, err := Filter(context.Background(), writeSample(t))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Rows, 3)
	assert.Equal(t, "Name", res.Columns[0])
	assert.False(t, res.NoMatches())
}

func TestFilter_WithTags(t *testing.T) {
	res, err := Filter(context.Background(), writeSample(t),
		WithUseCases("RAG"),
		WithContentTypes("Image", "Code"),
	)
	require.NoError(t, err)

	require.Equal(t, 1, res.Count)
	assert.Equal(t, "NSFWImage", res.Rows[0]["Name"])
}

func TestFilter_RepeatedOptionsAccumulate(t *testing.T) {
	res, err := Filter(context.Background(), writeSample(t),
		WithRiskCategories("Safety"),
		WithRiskCategories("Privacy"),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
}

func TestFilter_MatchModes(t *testing.T) {
	path := writeSample(t)

	res, err := Filter(context.Background(), path, WithRiskCategories("Risk"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	res, err = Filter(context.Background(), path, WithRiskCategories("Risk"), WithMatchMode(MatchToken))
	require.NoError(t, err)
	assert.True(t, res.NoMatches())
}

func TestFilter_InvalidMatchMode(t *testing.T) {
	_, err := Filter(context.Background(), writeSample(t), WithMatchMode("regex"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid match mode")
}

func TestFilter_EmptyPath(t *testing.T) {
	_, err := Filter(context.Background(), "")
	require.Error(t, err)
}

func TestFilter_MissingFile(t *testing.T) {
	_, err := Filter(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFilter_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Filter(ctx, writeSample(t))
	require.Error(t, err)
}

func TestResult_Render(t *testing.T) {
	res, err := Filter(context.Background(), writeSample(t), WithUseCases("Agents"))
	require.NoError(t, err)

	data, err := res.Render("json")
	require.NoError(t, err)

	var doc struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Count)

	md, err := res.Render("markdown")
	require.NoError(t, err)
	assert.Contains(t, string(md), "SecretsPresent")

	_, err = res.Render("pdf")
	require.Error(t, err)
}

func TestTags(t *testing.T) {
	tags, err := Tags(context.Background(), writeSample(t), "content-type")
	require.NoError(t, err)
	assert.Equal(t, []string{"Code", "Image", "Text"}, tags)
}

func TestTags_UnknownColumn(t *testing.T) {
	_, err := Tags(context.Background(), writeSample(t), "Infrastructure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")
}
