package history

import (
	"testing"

	"record-compactor/core/compactor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestColumns(t *testing.T) {
	cols := Columns()
	assert.Equal(t, "id", cols[0])
	assert.Contains(t, cols, "groups_count")
	assert.Contains(t, cols, "object_key")
	assert.Len(t, cols, 16)
}

func TestNewRun(t *testing.T) {
	c, err := compactor.New(compactor.DefaultOptions(), zap.NewNop())
	require.NoError(t, err)
	doc, err := compactor.ParseValue([]byte(`{"subresources":[` +
		`{"resource_type":"https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/a-step","url":"https://x/1","name":"one"},` +
		`{"name":"untyped"}]}`))
	require.NoError(t, err)
	a, err := c.Compact(doc)
	require.NoError(t, err)

	run := NewRun("input.json", a)
	assert.Equal(t, "input.json", run.Source)
	assert.Equal(t, "columnar", run.Fidelity)
	assert.Equal(t, 16, run.CodeWidth)
	assert.Equal(t, 1, run.Groups)
	assert.Equal(t, 1, run.Resources)
	assert.Equal(t, 1, run.ResourcesDropped)
	assert.Equal(t, 1, run.URLEntries)
	assert.Equal(t, 1, run.StringEntries)
	assert.Equal(t, a.Stats.CompressionRatio, run.Ratio)
}
