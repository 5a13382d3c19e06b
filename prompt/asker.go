// Package prompt implements the operator channel: typed questions with
// validation and retry. Two strategies implement the same interface — a
// terminal asker that blocks on real input, and an automatic asker that
// echoes the supplied defaults — so the resolver is written once against
// the capability and behaves identically in both modes.
package prompt

import (
	"strings"

	"github.com/stencil-cli/stencil/variable"
)

// Asker is the abstract typed question/answer capability. Questions arrive
// fully composed (positional prefix included); defaults are returned when
// the operator submits nothing.
type Asker interface {
	// Text asks a free-text question. Empty input yields def verbatim.
	Text(question, def string) (string, error)

	// YesNo asks a boolean question, accepting the fixed truthy and falsy
	// token sets (case-insensitive, trimmed). Anything else re-prompts.
	YesNo(question string, def bool) (bool, error)

	// Choice presents a numbered menu over the rendered option mappings
	// and returns the chosen one. Empty input selects options[defaultIndex].
	Choice(question string, options []*variable.OrderedDict, defaultIndex int) (*variable.OrderedDict, error)

	// JSONObject asks for a JSON object literal. Input that fails to parse
	// and input that parses to a non-object re-prompt with distinct
	// messages. Empty input yields def.
	JSONObject(question string, def *variable.OrderedDict) (*variable.OrderedDict, error)

	// Password asks for a secret without echoing where the medium allows.
	Password(question string) (string, error)
}

var (
	truthyTokens = []string{"1", "true", "t", "yes", "y", "on"}
	falsyTokens  = []string{"0", "false", "f", "no", "n", "off"}
)

// ParseBoolToken maps an operator answer onto a boolean. The second result
// reports whether the token was recognised at all.
func ParseBoolToken(s string) (value, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range truthyTokens {
		if s == t {
			return true, true
		}
	}
	for _, t := range falsyTokens {
		if s == t {
			return false, true
		}
	}
	return false, false
}

// OptionLabel renders a menu line label for an option mapping: the name,
// with the description appended when present and different.
func OptionLabel(opt *variable.OrderedDict) string {
	name := opt.GetString("name")
	desc := opt.GetString("description")
	if desc == "" || desc == name {
		return name
	}
	return name + " (" + desc + ")"
}
