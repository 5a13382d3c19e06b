package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

func resolvedContext(t *testing.T) *variable.Context {
	t.Helper()
	ctx := variable.NewContext()
	ctx.Set("project_name", variable.String("My Project"))
	ctx.Set("use_docker", variable.Bool(true))
	ctx.Set("color", variable.String("red"))
	ctx.Set("color/shade", variable.String("dark"))
	return ctx
}

func TestFileName(t *testing.T) {
	s := NewStore("/tmp/replay")
	assert.Equal(t, filepath.Join("/tmp/replay", "webapp.yaml"), s.FileName("webapp"))
	assert.Equal(t, filepath.Join("/tmp/replay", "webapp.yaml.json"), s.FileName("webapp.yaml"))
}

func TestDumpAndLoadContext(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "replay"))

	ctx := resolvedContext(t)
	require.NoError(t, s.Dump("webapp", FromContext(ctx)))

	got, err := s.Load("webapp")
	require.NoError(t, err)
	require.NotNil(t, got.Context)
	assert.Nil(t, got.Tree)
	assert.True(t, ctx.Equal(got.Context))
}

func TestDumpAndLoadTree(t *testing.T) {
	tree := &variable.Node{
		Name: variable.RootKey,
		Children: []*variable.Node{
			{Name: "project_name", Raw: variable.String("My Project")},
			{Name: "use_docker", Raw: variable.Bool(false)},
		},
	}
	s := NewStore(t.TempDir())
	require.NoError(t, s.Dump("tree-tmpl", FromTree(tree)))

	got, err := s.Load("tree-tmpl")
	require.NoError(t, err)
	require.NotNil(t, got.Tree)
	assert.Nil(t, got.Context)
	require.Len(t, got.Tree.Children, 2)
	assert.Equal(t, "project_name", got.Tree.Children[0].Name)
	assert.Equal(t, "My Project", got.Tree.Children[0].Raw.AsString())
	assert.Equal(t, variable.KindBool, got.Tree.Children[1].Raw.Kind())
}

func TestRoundTripContextWithNodeFieldNames(t *testing.T) {
	// Variables named like serialized-node fields must still come back as
	// a flat context, not be mistaken for a tree.
	ctx := variable.NewContext()
	ctx.Set("name", variable.String("My Project"))
	ctx.Set("variables", variable.String("many"))
	ctx.Set("license", variable.String("MIT"))

	s := NewStore(t.TempDir())
	require.NoError(t, s.Dump("collider", FromContext(ctx)))

	got, err := s.Load("collider")
	require.NoError(t, err)
	require.NotNil(t, got.Context)
	assert.Nil(t, got.Tree)
	assert.True(t, ctx.Equal(got.Context))
}

func TestLoadHandWrittenFileIsContext(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	content := "cookiecutter:\n  project_name: Handmade\n  use_docker: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manual.yaml"), []byte(content), 0o644))

	got, err := s.Load("manual")
	require.NoError(t, err)
	require.NotNil(t, got.Context)
	v, ok := got.Context.Get("project_name")
	require.True(t, ok)
	assert.Equal(t, "Handmade", v.AsString())
}

func TestDumpOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())

	first := variable.NewContext()
	first.Set("project_name", variable.String("first"))
	require.NoError(t, s.Dump("tmpl", FromContext(first)))

	second := variable.NewContext()
	second.Set("project_name", variable.String("second"))
	require.NoError(t, s.Dump("tmpl", FromContext(second)))

	got, err := s.Load("tmpl")
	require.NoError(t, err)
	v, ok := got.Context.Get("project_name")
	require.True(t, ok)
	assert.Equal(t, "second", v.AsString())
}

func TestDumpRejectsEmptyDocument(t *testing.T) {
	s := NewStore(t.TempDir())
	err := s.Dump("tmpl", &Document{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingContextKey))
}

func TestLoadRequiresReservedKey(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"),
		[]byte("project_name: oops\n"), 0o644))

	_, err := s.Load("bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingContextKey))
}

func TestLoadRejectsScalarPayload(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scalar.yaml"),
		[]byte("cookiecutter: just-a-string\n"), 0o644))

	_, err := s.Load("scalar")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidDefault))
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Load("never-dumped")
	require.Error(t, err)
}

func TestList(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "replay"))

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	ctx := resolvedContext(t)
	require.NoError(t, s.Dump("alpha", FromContext(ctx)))
	require.NoError(t, s.Dump("beta.yaml", FromContext(ctx)))

	names, err = s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta.yaml"}, names)
}
