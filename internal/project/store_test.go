package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesen/weave/pkg/flowgraph"
	"github.com/wesen/weave/pkg/geom"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func sampleGraph() *flowgraph.Graph {
	g := flowgraph.New()
	g.AddNode(flowgraph.Node{ID: "in", Type: "input", Label: "Input", Pos: geom.Pt(0, 0), Config: map[string]any{}})
	g.AddNode(flowgraph.Node{ID: "out", Type: "output", Label: "Output", Pos: geom.Pt(50, 10), Config: map[string]any{}})
	g.Connect("in", "out", "output", "input")
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("demo", sampleGraph()))

	g, err := s.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.True(t, g.HasConnection("in", "out"))
	assert.Equal(t, geom.Pt(50, 10), g.Node("out").Pos)
}

func TestLoadMissingWorkflow(t *testing.T) {
	s := openStore(t)
	_, err := s.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveOverwrites(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("demo", sampleGraph()))

	g := sampleGraph()
	g.AddNode(flowgraph.Node{ID: "extra", Type: "brain", Config: map[string]any{}})
	require.NoError(t, s.Save("demo", g))

	loaded, err := s.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.NodeCount())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("demo", sampleGraph()))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "demo"+fileExt, entries[0].Name())
}

func TestListSortedAndFiltered(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("beta", sampleGraph()))
	require.NoError(t, s.Save("alpha", sampleGraph()))
	// stray files are not workflows
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644))

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, ids)
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("demo", sampleGraph()))
	require.NoError(t, s.Delete("demo"))

	assert.ErrorIs(t, s.Delete("demo"), ErrNotFound)
	_, err := s.Load("demo")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectsPathEscapingIDs(t *testing.T) {
	s := openStore(t)
	for _, id := range []string{"", "../evil", "a/b", `a\b`} {
		assert.Error(t, s.Save(id, sampleGraph()), "id %q", id)
	}
}
