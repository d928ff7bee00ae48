package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rendercore/bvhmake/cmd/bvhmake/cmd"
	"github.com/rendercore/bvhmake/filefmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScene = `{
	"materials": ["default"],
	"vertices": [
		{"position": [0,0,0]}, {"position": [1,0,0]}, {"position": [0,1,0]},
		{"position": [10,0,0]}, {"position": [11,0,0]}, {"position": [10,1,0]}
	],
	"triangles": [
		{"v": [0,1,2], "material": 0},
		{"v": [3,4,5], "material": 0}
	]
}`

func TestExecute_SuccessWritesBimFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(validScene), 0o644))

	code, err := cmd.Execute([]string{scenePath, "--build", "kdtree", "--geometry", "aabox"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	outPath := filepath.Join(dir, "scene.bim")
	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	h, err := filefmt.ReadHeader(f)
	require.NoError(t, err)
	assert.Equal(t, filefmt.ChunkMaterialRef, h.Name)
}

func TestExecute_MissingArgument(t *testing.T) {
	code, err := cmd.Execute([]string{})
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestExecute_InvalidBuildMethod(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(validScene), 0o644))

	code, err := cmd.Execute([]string{scenePath, "--build", "bogus"})
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestExecute_ImportErrorOnMissingScene(t *testing.T) {
	dir := t.TempDir()
	code, err := cmd.Execute([]string{filepath.Join(dir, "missing.json")})
	assert.Error(t, err)
	assert.Equal(t, 3, code)
}

func TestExecute_EllipsoidGeometry(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(validScene), 0o644))

	code, err := cmd.Execute([]string{scenePath, "--geometry", "aaellipsoid"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}
