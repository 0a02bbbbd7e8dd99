package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleFlat = FlatMap{
	{Key: "export.file_format", Value: "parquet"},
	{Key: "export.codec", Value: "none"},
	{Key: "data_scope.underlyings", Value: "NIFTY,BANKNIFTY"},
}

func TestExportEnv(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportFlat(&buf, sampleFlat, FormatEnv))
	assert.Equal(t, "export.file_format=parquet\nexport.codec=none\ndata_scope.underlyings=NIFTY,BANKNIFTY\n", buf.String())
}

func TestExportJSONKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportFlat(&buf, sampleFlat, FormatJSON))
	assert.Equal(t, `{
  "export.file_format": "parquet",
  "export.codec": "none",
  "data_scope.underlyings": "NIFTY,BANKNIFTY"
}
`, buf.String())

	buf.Reset()
	require.NoError(t, ExportFlat(&buf, FlatMap{}, FormatJSON))
	assert.Equal(t, "{}\n", buf.String())
}

func TestExportYAMLKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportFlat(&buf, sampleFlat, FormatYAML))

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &node))
	m := node.Content[0]
	require.Len(t, m.Content, 6)
	assert.Equal(t, "export.file_format", m.Content[0].Value)
	assert.Equal(t, "export.codec", m.Content[2].Value)
	assert.Equal(t, "NIFTY,BANKNIFTY", m.Content[5].Value)
}

func TestExportTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportFlat(&buf, sampleFlat, FormatTOML))

	var got map[string]string
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleFlat.ToMap(), got)
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ExportFlat(&buf, sampleFlat, "xml"))
}

func TestSaveWritesFile(t *testing.T) {
	cfg := mustParse(t, `{"export": {}}`)
	path := filepath.Join(t.TempDir(), "flat.env")

	require.NoError(t, cfg.Save(path, FormatEnv))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export.file_format=parquet\nexport.codec=none\n", string(data))
}
