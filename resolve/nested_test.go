package resolve

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/prompt"
	"github.com/stencil-cli/stencil/variable"
)

func templateNode(t *testing.T, paths ...string) *variable.Node {
	t.Helper()
	opts := make([]variable.Value, 0, len(paths))
	for _, p := range paths {
		opt := variable.NewOrderedDict()
		opt.Set("name", variable.String(filepath.Base(p)))
		if p != "" {
			opt.Set("path", variable.String(p))
		}
		opts = append(opts, variable.Dict(opt))
	}
	meta := variable.NewOrderedDict()
	meta.Set("options", variable.List(opts))
	return &variable.Node{Name: "template", Meta: meta}
}

func TestIsTemplateNode(t *testing.T) {
	assert.True(t, IsTemplateNode(&variable.Node{Name: "template"}))
	assert.True(t, IsTemplateNode(&variable.Node{Name: "Template"}))
	assert.False(t, IsTemplateNode(&variable.Node{Name: "templates"}))
}

func TestChooseNestedTemplateNoInputTakesFirst(t *testing.T) {
	repo := t.TempDir()
	node := templateNode(t, "sub/app", "sub/cli")

	got, err := ChooseNestedTemplate(prompt.Auto{}, node, repo, true)
	require.NoError(t, err)
	abs, _ := filepath.Abs(repo)
	assert.Equal(t, filepath.Join(abs, "sub", "app"), got)
}

func TestChooseNestedTemplateInteractive(t *testing.T) {
	repo := t.TempDir()
	node := templateNode(t, "sub/app", "sub/cli")

	term := prompt.NewTerminal(strings.NewReader("2\n"), &bytes.Buffer{})
	got, err := ChooseNestedTemplate(term, node, repo, false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, filepath.Join("sub", "cli")))
}

func TestChooseNestedTemplateRejectsEscape(t *testing.T) {
	_, err := ChooseNestedTemplate(prompt.Auto{}, templateNode(t, "../evil"), t.TempDir(), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIllegalTemplatePath))
}

func TestChooseNestedTemplateRejectsAbsolute(t *testing.T) {
	_, err := ChooseNestedTemplate(prompt.Auto{}, templateNode(t, "/etc/passwd"), t.TempDir(), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIllegalTemplatePath))
}

func TestChooseNestedTemplateRejectsMissingPath(t *testing.T) {
	_, err := ChooseNestedTemplate(prompt.Auto{}, templateNode(t, ""), t.TempDir(), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIllegalTemplatePath))
}

func TestChooseNestedTemplateNoOptions(t *testing.T) {
	node := &variable.Node{Name: "template"}
	_, err := ChooseNestedTemplate(prompt.Auto{}, node, t.TempDir(), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyChoices))
}
