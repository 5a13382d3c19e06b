// Package resolve walks a variable tree and produces the flat resolved
// context: defaults rendered against earlier answers, operator
// confirmation in interactive mode, and depth-first expansion of branches
// whose match value equals their parent's resolved value.
package resolve

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/logger"
	"github.com/stencil-cli/stencil/prompt"
	"github.com/stencil-cli/stencil/render"
	"github.com/stencil-cli/stencil/variable"
)

// Resolver drives one resolution pass. Strictly synchronous: every prompt
// blocks the whole resolution until answered, and ordering is a
// correctness requirement because later renders read earlier values.
type Resolver struct {
	renderer *render.Renderer
	asker    prompt.Asker
	log      *zap.SugaredLogger
}

// New returns a resolver using the given renderer and operator channel.
func New(renderer *render.Renderer, asker prompt.Asker) *Resolver {
	return &Resolver{
		renderer: renderer,
		asker:    asker,
		log:      logger.Logger.Named("resolve"),
	}
}

// position tracks the operator-visible question counter. The total counts
// promptable variables at the root level; branch variables reuse their
// parent's prefix, as do nested levels.
type position struct {
	count int
	total int
}

func (p *position) next() string {
	p.count++
	return fmt.Sprintf("  [%d/%d] ", p.count, p.total)
}

// Resolve produces the resolved context for the tree rooted at root. With
// noInput set, every value is the rendered default; otherwise the operator
// confirms or overrides each promptable variable. Both modes produce the
// same shape of output. On any rendering failure the whole resolution
// aborts; no partial context is returned.
func (r *Resolver) Resolve(root *variable.Node, noInput bool) (*variable.Context, error) {
	ctx := variable.NewContext()
	pos := &position{total: countVisible(root)}
	if err := r.resolveLevel(root.Children, ctx, "", noInput, pos, ""); err != nil {
		return nil, err
	}
	r.log.Debugw("resolution complete", "variables", ctx.Len(), "no_input", noInput)
	return ctx, nil
}

// countVisible counts the variables that receive a positional prefix:
// every root-level child without a private/derived marker.
func countVisible(root *variable.Node) int {
	n := 0
	for _, c := range root.Children {
		if !c.IsPrivate() && !c.IsDerived() {
			n++
		}
	}
	return n
}

// resolveLevel runs the two passes over one level of the tree. Pass 1
// handles everything but dict-valued variables, expanding branches as each
// value is fixed. Pass 2 renders the dict-valued variables against the
// then-complete level so their templates can reference any pass-1 sibling
// regardless of declaration order. Branch levels carry their parent's
// positional prefix in inherited.
func (r *Resolver) resolveLevel(children []*variable.Node, ctx *variable.Context, prefix string, noInput bool, pos *position, inherited string) error {
	for _, child := range children {
		if child.Raw.Kind() == variable.KindDict && !child.IsPrivate() {
			continue // pass 2
		}
		if err := r.resolveVariable(child, ctx, prefix, noInput, pos, inherited); err != nil {
			return err
		}
	}

	for _, child := range children {
		if child.Raw.Kind() != variable.KindDict || child.IsPrivate() {
			continue
		}
		if err := r.resolveDict(child, ctx, prefix, noInput, pos, inherited); err != nil {
			return err
		}
	}
	return nil
}

// resolveVariable fixes the value of one non-dict variable at
// prefix+name, then expands matching branches beneath it. Root-level
// variables take the next positional prefix; branch variables reuse the
// inherited one.
func (r *Resolver) resolveVariable(node *variable.Node, ctx *variable.Context, prefix string, noInput bool, pos *position, inherited string) error {
	key := prefix + node.Name

	// Private: copied verbatim, never rendered, never prompted, and its
	// children never activate.
	if node.IsPrivate() {
		ctx.Set(key, node.Raw)
		return nil
	}

	// Derived: rendered against the context so far, never prompted, no
	// branch expansion.
	if node.IsDerived() {
		rendered, err := r.renderer.RenderValue(node.Raw, ctx)
		if err != nil {
			return r.renderError(node.Name, ctx, err)
		}
		ctx.Set(key, rendered)
		return nil
	}

	qprefix := inherited
	if prefix == "" {
		qprefix = pos.next()
	}

	switch node.Raw.Kind() {
	case variable.KindList:
		if err := r.resolveChoice(node, ctx, key, qprefix, noInput); err != nil {
			return err
		}
	case variable.KindBool:
		if noInput {
			// Pass-through render keeps booleans unchanged.
			ctx.Set(key, node.Raw)
		} else {
			answer, err := r.asker.YesNo(qprefix+node.PromptText(), node.Raw.AsBool())
			if err != nil {
				return err
			}
			ctx.Set(key, variable.Bool(answer))
		}
	default:
		rendered, err := r.renderer.RenderValue(node.Raw, ctx)
		if err != nil {
			return r.renderError(node.Name, ctx, err)
		}
		if noInput {
			ctx.Set(key, rendered)
		} else {
			answer, err := r.asker.Text(qprefix+node.PromptText(), rendered.Display())
			if err != nil {
				return err
			}
			ctx.Set(key, variable.String(answer))
		}
	}

	return r.expandBranches(node, ctx, key, noInput, pos, qprefix)
}

// resolveChoice renders every option, asks for a selection, and stores the
// chosen option's name field under key.
func (r *Resolver) resolveChoice(node *variable.Node, ctx *variable.Context, key, qprefix string, noInput bool) error {
	raw := node.Raw.AsList()
	if len(raw) == 0 {
		return errors.Wrapf(errors.ErrEmptyChoices, "variable %q", node.Name)
	}

	options := make([]*variable.OrderedDict, 0, len(raw))
	for _, o := range raw {
		rendered, err := r.renderer.RenderValue(o, ctx)
		if err != nil {
			return r.renderError(node.Name, ctx, err)
		}
		options = append(options, asOption(rendered))
	}

	var chosen *variable.OrderedDict
	var err error
	if noInput {
		chosen = options[0]
	} else {
		chosen, err = r.asker.Choice(qprefix+"Select "+node.PromptText(), options, 0)
		if err != nil {
			return err
		}
	}
	ctx.Set(key, variable.String(chosen.GetString("name")))
	return nil
}

// asOption normalises a rendered list element into an option mapping:
// plain strings become {name: s} so selection always stores a name.
func asOption(v variable.Value) *variable.OrderedDict {
	if v.Kind() == variable.KindDict {
		return v.AsDict()
	}
	opt := variable.NewOrderedDict()
	opt.Set("name", variable.String(v.Display()))
	return opt
}

// resolveDict renders a dict variable against the fully-populated level
// and, in interactive mode, lets the operator replace it with a JSON
// object. Dict variables never expand branches.
func (r *Resolver) resolveDict(node *variable.Node, ctx *variable.Context, prefix string, noInput bool, pos *position, inherited string) error {
	key := prefix + node.Name

	rendered, err := r.renderer.RenderValue(node.Raw, ctx)
	if err != nil {
		return r.renderError(node.Name, ctx, err)
	}

	if noInput || node.IsDerived() {
		ctx.Set(key, rendered)
		return nil
	}

	qprefix := inherited
	if prefix == "" {
		qprefix = pos.next()
	}
	answer, err := r.asker.JSONObject(qprefix+node.PromptText(), rendered.AsDict())
	if err != nil {
		return err
	}
	ctx.Set(key, variable.Dict(answer))
	return nil
}

// expandBranches resolves every child whose match value equals the value
// just stored under parentKey. Matching compares against the immediate
// parent only, exactly one level of lookback. Children that do not match
// contribute nothing to the context; matched children prompt with the
// parent's positional prefix.
func (r *Resolver) expandBranches(node *variable.Node, ctx *variable.Context, parentKey string, noInput bool, pos *position, qprefix string) error {
	if len(node.Children) == 0 {
		return nil
	}
	stored, ok := ctx.Get(parentKey)
	if !ok {
		return nil
	}

	matched := make([]*variable.Node, 0, len(node.Children))
	for _, branch := range node.Children {
		if branch.Match.Equal(stored) {
			matched = append(matched, branch)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	r.log.Debugw("branch activated",
		"parent", parentKey, "value", stored.Display(), "variables", len(matched))
	return r.resolveLevel(matched, ctx, parentKey+variable.PathSeparator, noInput, pos, qprefix)
}

// renderError wraps a rendering failure with the offending variable and a
// snapshot of the context at that point.
func (r *Resolver) renderError(name string, ctx *variable.Context, err error) error {
	return errors.Wrapf(
		errors.WithDetailf(err, "context: %s", ctx.Snapshot()),
		"unable to render variable %q", name)
}
