package prompt

import (
	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

// Auto is the no-input strategy: every question resolves to its default
// without blocking. The resolver produces the same shape of output in
// both modes; only the source of each value differs.
type Auto struct{}

// Text implements Asker.
func (Auto) Text(_ string, def string) (string, error) {
	return def, nil
}

// YesNo implements Asker.
func (Auto) YesNo(_ string, def bool) (bool, error) {
	return def, nil
}

// Choice implements Asker.
func (Auto) Choice(question string, options []*variable.OrderedDict, defaultIndex int) (*variable.OrderedDict, error) {
	if len(options) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyChoices, question)
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}
	return options[defaultIndex], nil
}

// JSONObject implements Asker.
func (Auto) JSONObject(_ string, def *variable.OrderedDict) (*variable.OrderedDict, error) {
	if def == nil {
		return variable.NewOrderedDict(), nil
	}
	return def.Clone(), nil
}

// Password implements Asker.
func (Auto) Password(string) (string, error) {
	return "", nil
}
