package variable

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stencil-cli/stencil/errors"
)

// VariableFileNames are the file names probed, in order, when a template
// directory is given instead of a file. JSON parses as YAML, so both
// extensions go through the same decoder.
var VariableFileNames = []string{"stencil.yaml", "stencil.json"}

// ParseFile loads a variable specification from path. A directory path is
// probed for the well-known variable file names.
func ParseFile(path string) (*Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "variable file %q", path)
	}
	if info.IsDir() {
		found := ""
		for _, name := range VariableFileNames {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				found = candidate
				break
			}
		}
		if found == "" {
			return nil, errors.Newf("no variable file in %q (looked for %v)", path, VariableFileNames)
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read variable file %q", path)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "variable file %q", path)
	}
	return root, nil
}

// Parse decodes a variable specification. Two top-level shapes are
// accepted: the tree form ({name, variables: [...]}) and the flat form,
// a plain mapping of variable name to default value. The flat form has
// no prompts, branches, or metadata. A document is the tree form only
// when it carries a "variables" list of node mappings; flat variables
// named "name" or "variables" with other shapes stay ordinary variables.
func Parse(data []byte) (*Node, error) {
	var v Value
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "parse variable specification")
	}
	if v.Kind() != KindDict {
		return nil, errors.Newf("variable specification must be a mapping, got %s", v.Kind())
	}

	d := v.AsDict()
	if isTreeForm(d) {
		return NodeFromValue(v)
	}

	root := &Node{Name: RootKey, Raw: Nil(), Match: Nil()}
	for _, name := range d.Keys() {
		raw, _ := d.Get(name)
		root.Children = append(root.Children, &Node{Name: name, Raw: raw, Match: Nil()})
	}
	return root, nil
}

// isTreeForm distinguishes the tree form from the flat form: the tree
// form's "variables" key holds a list of node mappings, each with a
// string "name". Anything else, including a flat variable that happens
// to be called "name" or "variables", is the flat form.
func isTreeForm(d *OrderedDict) bool {
	vars, ok := d.Get("variables")
	if !ok || vars.Kind() != KindList || len(vars.AsList()) == 0 {
		return false
	}
	for _, e := range vars.AsList() {
		if e.Kind() != KindDict {
			return false
		}
		if name, ok := e.AsDict().Get("name"); !ok || name.Kind() != KindString {
			return false
		}
	}
	return true
}
