// Package replay persists resolved contexts keyed by template name, so a
// later run can reuse the same answers without prompting.
package replay

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/variable"
)

const (
	primaryExt   = ".yaml"
	alternateExt = ".json"
)

// The document records which form the reserved key holds, so loading never
// has to guess from the payload's keys. A context may legitimately contain
// variables named "name" or "variables"; sniffing would misread it.
const (
	formKey     = "form"
	formTree    = "tree"
	formContext = "context"
)

// Document is the persisted replay payload: the value under the reserved
// top-level key, as either the serialized variable tree or the flat
// resolved mapping. Exactly one of the fields is set.
type Document struct {
	Tree    *variable.Node
	Context *variable.Context
}

// FromContext wraps a resolved context for persistence.
func FromContext(ctx *variable.Context) *Document {
	return &Document{Context: ctx}
}

// FromTree wraps a variable tree for persistence.
func FromTree(root *variable.Node) *Document {
	return &Document{Tree: root}
}

// payload returns the value stored under the reserved key and the form
// marker describing it.
func (d *Document) payload() (variable.Value, string, bool) {
	switch {
	case d == nil:
		return variable.Nil(), "", false
	case d.Tree != nil:
		return d.Tree.ToValue(), formTree, true
	case d.Context != nil:
		return d.Context.ToValue(), formContext, true
	}
	return variable.Nil(), "", false
}

// Store reads and writes replay files under a single directory.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first Dump.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// FileName returns the replay file path for a template name. Names that
// already carry the primary extension's look-alike ending switch to the
// alternate extension, so "tmpl.yaml" and "tmpl" never collide.
func (s *Store) FileName(templateName string) string {
	ext := primaryExt
	if strings.HasSuffix(templateName, primaryExt) {
		ext = alternateExt
	}
	return filepath.Join(s.Dir, templateName+ext)
}

// Dump writes the document for templateName, creating the store directory
// if absent and overwriting any existing file unconditionally. A document
// without the reserved-key payload is a configuration error.
func (s *Store) Dump(templateName string, doc *Document) error {
	payload, form, ok := doc.payload()
	if !ok {
		return errors.WithHint(errors.ErrMissingContextKey,
			"replay documents wrap either a variable tree or a resolved context")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "create replay directory %q", s.Dir)
	}

	root := variable.NewOrderedDict()
	root.Set(variable.RootKey, payload)
	root.Set(formKey, variable.String(form))
	data, err := yaml.Marshal(variable.Dict(root))
	if err != nil {
		return errors.Wrapf(err, "serialize replay for %q", templateName)
	}

	path := s.FileName(templateName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write replay file %q", path)
	}
	return nil
}

// Load reads the document for templateName. The reserved key must be
// present; its value comes back as a variable tree when the document's
// form marker says so, and as the flat resolved mapping otherwise. Files
// written by hand carry no marker and hold the flat mapping.
func (s *Store) Load(templateName string) (*Document, error) {
	path := s.FileName(templateName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read replay file %q", path)
	}

	var root variable.Value
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrapf(err, "parse replay file %q", path)
	}
	if root.Kind() != variable.KindDict {
		return nil, errors.Wrapf(errors.ErrMissingContextKey, "replay file %q", path)
	}
	payload, ok := root.AsDict().Get(variable.RootKey)
	if !ok {
		return nil, errors.Wrapf(errors.ErrMissingContextKey, "replay file %q", path)
	}
	if payload.Kind() != variable.KindDict {
		return nil, errors.Wrapf(errors.ErrInvalidDefault,
			"replay file %q: reserved key must hold a mapping", path)
	}

	if root.AsDict().GetString(formKey) == formTree {
		tree, err := variable.NodeFromValue(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "replay file %q", path)
		}
		return FromTree(tree), nil
	}

	ctx, _ := variable.ContextFromValue(payload)
	return FromContext(ctx), nil
}

// List returns the template names with a replay file in the store, in
// directory order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read replay directory %q", s.Dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, alternateExt):
			names = append(names, strings.TrimSuffix(name, alternateExt))
		case strings.HasSuffix(name, primaryExt):
			names = append(names, strings.TrimSuffix(name, primaryExt))
		}
	}
	return names, nil
}
