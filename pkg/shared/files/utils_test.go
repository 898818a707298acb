package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/results")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "results"), got)

	got, err = ExpandPath("/tmp/results")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/results", got)
}

func TestListAndRemoveBySuffix(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_results.json", "a_results.json.json", "notes.txt", "c_results.json.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d_results.json"), 0755))

	suffixes := []string{"_results.json", "_results.json.json"}
	names, err := ListBySuffix(dir, suffixes)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_results.json.json", "b_results.json"}, names)

	require.NoError(t, RemoveBySuffix(dir, suffixes))
	names, err = ListBySuffix(dir, suffixes)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.True(t, Exists(filepath.Join(dir, "notes.txt")))
}

func TestEnsureWithinRoot(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{name: "file inside root", target: filepath.Join(root, "app", "go.mod")},
		{name: "root itself", target: root},
		{name: "parent escape", target: filepath.Join(root, "..", "etc", "passwd"), wantErr: true},
		{name: "dotdot prefixed name stays inside", target: filepath.Join(root, "..hidden")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnsureWithinRoot(root, tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.target), got)
		})
	}
}

func TestCreateFolderIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	require.NoError(t, CreateFolderIfNotExists(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	require.NoError(t, CreateFolderIfNotExists(dir))
}

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, WriteFile(path, []byte("a longer first version")))
	require.NoError(t, WriteFile(path, []byte("short")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}
