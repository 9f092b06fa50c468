package staticize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceStates(t *testing.T) {
	dir := t.TempDir()
	missing := NewResource(filepath.Join(dir, "missing.html"))
	assert.False(t, missing.Exists())
	assert.Equal(t, ResourceStateNotFound, missing.State)
	_, err := missing.ReadAll()
	assert.Error(t, err)

	path := filepath.Join(dir, "voc", "list.html")
	writeFile(t, path, "<p></p>")
	res := NewResource(path)
	assert.True(t, res.Exists())
	data, err := res.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "<p></p>", string(data))
	assert.Equal(t, ResourceStateLoaded, res.State)
	assert.False(t, res.UpdatedAt.IsZero())

	assert.Equal(t, "voc/list.html", res.RelPath(dir))
	assert.Equal(t, "", res.RelPath(filepath.Join(dir, "other")))

	assert.Equal(t, "..x/p.html", NewResource(filepath.Join(dir, "..x", "p.html")).RelPath(dir))
	assert.False(t, NewResource(dir).Exists())
}
