package sceneimport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rendercore/bvhmake/sceneimport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_ValidScene(t *testing.T) {
	const body = `{
		"materials": ["default"],
		"vertices": [
			{"position": [0,0,0]},
			{"position": [1,0,0]},
			{"position": [0,1,0]}
		],
		"triangles": [
			{"v": [0,1,2], "material": 0}
		]
	}`
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	src, err := sceneimport.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, src.Vertices(), 3)
	assert.Len(t, src.Triangles(), 1)
	assert.Equal(t, []string{"default"}, src.Materials())
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := sceneimport.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, sceneimport.ErrOpenScene)
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := sceneimport.LoadFile(path)
	assert.ErrorIs(t, err, sceneimport.ErrDecodeScene)
}
