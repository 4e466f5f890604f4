package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	content, err := exporter.Render(Dataset{
		Headers: []string{"id", "action"},
		Rows: []map[string]string{
			{"id": "l1", "action": "Loaded"},
			{"id": "l2", "action": "Unloaded"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "id,action\nl1,Loaded\nl2,Unloaded\n", string(content))
}

func TestCSVExporterRenderMissingValue(t *testing.T) {
	exporter := NewCSVExporter()
	content, err := exporter.Render(Dataset{
		Headers: []string{"id", "action"},
		Rows:    []map[string]string{{"id": "l1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "id,action\nl1,\n", string(content))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}
