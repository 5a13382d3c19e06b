package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

func TestParseBoolToken(t *testing.T) {
	for _, s := range []string{"1", "true", "t", "yes", "y", "on", "  YES ", "On"} {
		v, ok := ParseBoolToken(s)
		assert.True(t, ok, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "false", "f", "no", "n", "off", " OFF "} {
		v, ok := ParseBoolToken(s)
		assert.True(t, ok, s)
		assert.False(t, v, s)
	}
	for _, s := range []string{"maybe", "", "2", "yess"} {
		_, ok := ParseBoolToken(s)
		assert.False(t, ok, s)
	}
}

func TestOptionLabel(t *testing.T) {
	opt := variable.NewOrderedDict()
	opt.Set("name", variable.String("fastapi"))
	assert.Equal(t, "fastapi", OptionLabel(opt))

	opt.Set("description", variable.String("fastapi"))
	assert.Equal(t, "fastapi", OptionLabel(opt))

	opt.Set("description", variable.String("FastAPI starter"))
	assert.Equal(t, "fastapi (FastAPI starter)", OptionLabel(opt))
}

func TestDecodeObjectPreservesMemberOrder(t *testing.T) {
	got, err := DecodeObject(`{"z": 1, "a": {"nested": [true, null]}, "m": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, got.Keys())

	// Numbers fold into strings per the value model.
	assert.Equal(t, "1", got.GetString("z"))
}

func TestDecodeObjectFailures(t *testing.T) {
	_, err := DecodeObject("{broken")
	require.Error(t, err)
	assert.Equal(t, msgJSONDecode, err.Error())

	_, err = DecodeObject(`"a plain string"`)
	require.Error(t, err)
	assert.Equal(t, msgJSONDict, err.Error())

	_, err = DecodeObject(`{"a": 1} trailing`)
	require.Error(t, err)
	assert.Equal(t, msgJSONDecode, err.Error())
}

func TestEncodeObjectRoundTrip(t *testing.T) {
	d := variable.NewOrderedDict()
	d.Set("b", variable.String("2"))
	d.Set("a", variable.Bool(true))

	encoded := EncodeObject(d)
	back, err := DecodeObject(encoded)
	require.NoError(t, err)
	assert.True(t, d.Equal(back))
}

func TestAutoEchoesDefaults(t *testing.T) {
	a := Auto{}

	text, err := a.Text("q", "rendered-default")
	require.NoError(t, err)
	assert.Equal(t, "rendered-default", text)

	yes, err := a.YesNo("q", true)
	require.NoError(t, err)
	assert.True(t, yes)

	opt, err := a.Choice("q", options("red", "blue"), 0)
	require.NoError(t, err)
	assert.Equal(t, "red", opt.GetString("name"))

	_, err = a.Choice("q", nil, 0)
	assert.True(t, errors.Is(err, errors.ErrEmptyChoices))

	d, err := a.JSONObject("q", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())

	secret, err := a.Password("q")
	require.NoError(t, err)
	assert.Empty(t, secret)
}

func TestTextMapCollectsUntilExit(t *testing.T) {
	// Two entries, then the exit token with a confirmed exit.
	term, _ := terminalFor("alpha\nbeta\n\ny\n")
	got, err := TextMap(term, "dependency", "done", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, got.Keys())
}

func TestTextMapExitDeclinedContinues(t *testing.T) {
	// Exit token, decline exit, one more entry, exit confirmed.
	term, _ := terminalFor("\nn\ngamma\n\n\n")
	got, err := TextMap(term, "dependency", "done", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, got.Keys())
}

func TestTextListReturnsKeys(t *testing.T) {
	term, _ := terminalFor("one\ntwo\n\ny\n")
	got, err := TextList(term, "item", "stop")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestConfirmAndDeleteNoInputDeletes(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cached-template")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "sub", "f.txt"), []byte("x"), 0o644))

	deleted, err := ConfirmAndDelete(Auto{}, target, true)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfirmAndDeleteReuse(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cached.zip")
	require.NoError(t, os.WriteFile(target, []byte("zip"), 0o644))

	// Decline delete, accept reuse.
	term := NewTerminal(strings.NewReader("n\ny\n"), &strings.Builder{})
	deleted, err := ConfirmAndDelete(term, target, false)
	require.NoError(t, err)
	assert.False(t, deleted)
	_, statErr := os.Stat(target)
	assert.NoError(t, statErr)
}

func TestConfirmAndDeleteDeclineBothAborts(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cached.zip")
	require.NoError(t, os.WriteFile(target, []byte("zip"), 0o644))

	term := NewTerminal(strings.NewReader("n\nn\n"), &strings.Builder{})
	_, err := ConfirmAndDelete(term, target, false)
	require.Error(t, err)
	assert.True(t, errors.IsAbortedError(err))
}
