package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

func terminalFor(input string) (*Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewTerminal(strings.NewReader(input), out), out
}

func options(names ...string) []*variable.OrderedDict {
	opts := make([]*variable.OrderedDict, len(names))
	for i, n := range names {
		d := variable.NewOrderedDict()
		d.Set("name", variable.String(n))
		opts[i] = d
	}
	return opts
}

func TestTextReturnsAnswer(t *testing.T) {
	term, out := terminalFor("my-project\n")
	got, err := term.Text("project_name", "default")
	require.NoError(t, err)
	assert.Equal(t, "my-project", got)
	assert.Contains(t, out.String(), "project_name (default): ")
}

func TestTextEmptyInputUsesDefault(t *testing.T) {
	term, _ := terminalFor("\n")
	got, err := term.Text("project_name", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}

func TestTextClosedInputAborts(t *testing.T) {
	term, _ := terminalFor("")
	_, err := term.Text("project_name", "default")
	require.Error(t, err)
	assert.True(t, errors.IsAbortedError(err))
}

func TestYesNoTokenTable(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true}, {"true", true}, {"T", true}, {"YES", true}, {"y", true}, {"On", true},
		{"0", false}, {"false", false}, {"No", false}, {"off", false}, {"F", false}, {"N", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term, _ := terminalFor(tt.input + "\n")
			got, err := term.YesNo("use_docker", !tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYesNoRejectsAndReprompts(t *testing.T) {
	term, out := terminalFor("maybe\nyes\n")
	got, err := term.YesNo("use_docker", false)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Contains(t, out.String(), "Please answer yes or no")
}

func TestYesNoEmptyUsesDefault(t *testing.T) {
	term, _ := terminalFor("\n")
	got, err := term.YesNo("use_docker", true)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestChoiceNumberedMenu(t *testing.T) {
	term, out := terminalFor("2\n")
	opt, err := term.Choice("Select color", options("red", "blue"), 0)
	require.NoError(t, err)
	assert.Equal(t, "blue", opt.GetString("name"))

	menu := out.String()
	assert.Contains(t, menu, "Select color")
	assert.Contains(t, menu, "red")
	assert.Contains(t, menu, "blue")
	assert.Contains(t, menu, "Choose from [1-2] (1)")
}

func TestChoiceEmptyInputUsesDefaultIndex(t *testing.T) {
	term, _ := terminalFor("\n")
	opt, err := term.Choice("Select color", options("red", "blue"), 1)
	require.NoError(t, err)
	assert.Equal(t, "blue", opt.GetString("name"))
}

func TestChoiceInvalidAnswersReprompt(t *testing.T) {
	term, out := terminalFor("0\nseven\n99\n1\n")
	opt, err := term.Choice("Select color", options("red", "blue"), 0)
	require.NoError(t, err)
	assert.Equal(t, "red", opt.GetString("name"))
	assert.Contains(t, out.String(), "Invalid selection")
}

func TestChoiceEmptyOptionsIsConfigurationError(t *testing.T) {
	term, _ := terminalFor("1\n")
	_, err := term.Choice("Select color", nil, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyChoices))
}

func TestJSONObjectParsesInput(t *testing.T) {
	term, _ := terminalFor(`{"b": "2", "a": true}` + "\n")
	got, err := term.JSONObject("files", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got.Keys())
}

func TestJSONObjectEmptyUsesDefault(t *testing.T) {
	def := variable.NewOrderedDict()
	def.Set("a", variable.String("1"))

	term, _ := terminalFor("\n")
	got, err := term.JSONObject("files", def)
	require.NoError(t, err)
	assert.True(t, def.Equal(got))

	// The returned mapping is a fresh container.
	got.Set("b", variable.String("2"))
	assert.False(t, def.Equal(got))
}

func TestJSONObjectDistinctFailureMessages(t *testing.T) {
	term, out := terminalFor("not json\n[1, 2]\n{\"ok\": 1}\n")
	got, err := term.JSONObject("files", nil)
	require.NoError(t, err)
	assert.Equal(t, "1", got.GetString("ok"))

	assert.Contains(t, out.String(), msgJSONDecode)
	assert.Contains(t, out.String(), msgJSONDict)
}

func TestPasswordFallsBackToPlainRead(t *testing.T) {
	term, _ := terminalFor("hunter2\n")
	got, err := term.Password("Password for repo")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}
