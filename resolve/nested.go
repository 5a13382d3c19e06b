package resolve

import (
	"path/filepath"
	"strings"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/prompt"
	"github.com/stencil-cli/stencil/variable"
)

// IsTemplateNode reports whether node is the reserved nested-template
// selection variable.
func IsTemplateNode(node *variable.Node) bool {
	return strings.EqualFold(node.Name, "template")
}

// ChooseNestedTemplate resolves a nested-template selection: the node's
// metadata holds template options, each carrying a relative path. The
// first option wins in no-input mode; otherwise the operator picks from
// the menu. The chosen path must be relative and must stay inside
// repoDir; the absolute joined location is returned. No side effects
// beyond the prompt.
func ChooseNestedTemplate(asker prompt.Asker, node *variable.Node, repoDir string, noInput bool) (string, error) {
	meta, ok := node.Metadata()
	if !ok {
		return "", errors.Wrapf(errors.ErrEmptyChoices, "template variable %q has no metadata", node.Name)
	}
	rawOptions, ok := meta.Get("options")
	if !ok || rawOptions.Kind() != variable.KindList || len(rawOptions.AsList()) == 0 {
		return "", errors.Wrapf(errors.ErrEmptyChoices, "template variable %q has no options", node.Name)
	}

	options := make([]*variable.OrderedDict, 0, len(rawOptions.AsList()))
	for _, o := range rawOptions.AsList() {
		options = append(options, asOption(o))
	}

	var chosen *variable.OrderedDict
	var err error
	if noInput {
		chosen = options[0]
	} else {
		chosen, err = asker.Choice("Select a template", options, 0)
		if err != nil {
			return "", err
		}
	}

	rel := chosen.GetString("path")
	if rel == "" {
		return "", errors.Wrapf(errors.ErrIllegalTemplatePath, "option %q has no path", chosen.GetString("name"))
	}
	if filepath.IsAbs(rel) {
		return "", errors.Wrapf(errors.ErrIllegalTemplatePath, "path %q is absolute", rel)
	}

	base, err := filepath.Abs(repoDir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve repository directory %q", repoDir)
	}
	joined := filepath.Clean(filepath.Join(base, rel))
	if joined != base && !strings.HasPrefix(joined, base+string(filepath.Separator)) {
		return "", errors.Wrapf(errors.ErrIllegalTemplatePath, "path %q escapes the repository directory", rel)
	}
	return joined, nil
}
