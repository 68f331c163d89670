package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instruments.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDatasourceFile_Rows(t *testing.T) {
	path := writeTempFile(t, "a,b\r\nc,d;e,f\n\n g ")

	src := NewFileSource(path)
	require.NoError(t, src.Open())
	defer func() { _ = src.Close() }()

	assert.Equal(t, []string{"a,b", "c,d", "e,f", " g "}, drain(t, src))
}

func TestDatasourceFile_Empty(t *testing.T) {
	src := NewFileSource(writeTempFile(t, ""))
	require.NoError(t, src.Open())
	defer func() { _ = src.Close() }()

	assert.Empty(t, drain(t, src))
}

func TestDatasourceFile_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, src.Open())
	assert.NoError(t, src.Close())
}

func TestDatasourceFile_NotOpen(t *testing.T) {
	_, err := NewFileSource("unused").Next(context.Background())
	assert.Error(t, err)
}
