package staticize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testConfig returns the default config over testdata/templates, writing into a temp dir.
func testConfig(t *testing.T) *Config {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("testdata", "templates"))
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.SourceRoot = root
	cfg.DestRoot = filepath.Join(t.TempDir(), "html")
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// chdir changes the working directory for the rest of the test and restores it
// on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
