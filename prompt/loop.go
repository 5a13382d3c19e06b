package prompt

import (
	"github.com/stencil-cli/stencil/variable"
)

// InnerFunc produces the value stored under each key collected by TextMap.
// A nil InnerFunc stores an empty mapping per key.
type InnerFunc func() (variable.Value, error)

// TextMap repeatedly asks for entries until the operator submits the exit
// token and confirms. Each call builds a fresh mapping; containers are
// never shared across invocations.
func TextMap(a Asker, question, exitToken string, inner InnerFunc) (*variable.OrderedDict, error) {
	entries := variable.NewOrderedDict()

	for {
		key, err := a.Text(question, exitToken)
		if err != nil {
			return nil, err
		}
		if key == exitToken {
			stop, err := a.YesNo("Exit?", true)
			if err != nil {
				return nil, err
			}
			if stop {
				return entries, nil
			}
			continue
		}

		if inner == nil {
			entries.Set(key, variable.Dict(variable.NewOrderedDict()))
			continue
		}
		value, err := inner()
		if err != nil {
			return nil, err
		}
		entries.Set(key, value)
	}
}

// TextList collects entries like TextMap and returns just the keys, in
// entry order.
func TextList(a Asker, question, exitToken string) ([]string, error) {
	entries, err := TextMap(a, question, exitToken, nil)
	if err != nil {
		return nil, err
	}
	return entries.Keys(), nil
}
