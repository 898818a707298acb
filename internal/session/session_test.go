package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/vulx/internal/config"
)

const document = `{
  "Results": [
    {
      "Target": "main.tf",
      "Class": "config",
      "Misconfigurations": [
        {"ID": "AVD-AWS-0086", "Title": "S3 public access", "Severity": "HIGH",
         "CauseMetadata": {"StartLine": 3, "EndLine": 7}}
      ]
    }
  ]
}`

func TestSessionLoad(t *testing.T) {
	workspace := t.TempDir()
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "a_results.json"), []byte(document), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "main.tf"), []byte("x\n"), 0644))

	cfg := &config.Config{Vul: config.Vul{ResultsFolder: folder}}
	s, err := New(cfg, nil, workspace)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(workspace), s.Workspace)
	require.NotNil(t, s.Metadata)

	require.NoError(t, s.Load(context.Background()))

	top := s.Tree.TopLevel()
	require.Len(t, top, 1)
	assert.Equal(t, "main.tf", top[0].Label)

	leaf, err := s.Tree.Resolve([]int{1, 1, 1})
	require.NoError(t, err)
	require.NotNil(t, leaf.Command)
	assert.Equal(t, filepath.Join(workspace, "main.tf"), leaf.Command.Path)
}

func TestSessionLoadMissingFolder(t *testing.T) {
	cfg := &config.Config{Vul: config.Vul{ResultsFolder: filepath.Join(t.TempDir(), "missing")}}
	s, err := New(cfg, nil, t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Load(context.Background()))
	assert.Empty(t, s.Tree.TopLevel())
}
