package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/config"
	"github.com/stencil-cli/stencil/errors"
	"github.com/stencil-cli/stencil/logger"
	"github.com/stencil-cli/stencil/prompt"
	"github.com/stencil-cli/stencil/render"
	"github.com/stencil-cli/stencil/replay"
	"github.com/stencil-cli/stencil/resolve"
	"github.com/stencil-cli/stencil/variable"
)

// NewCmd resolves a template's variables into a context
var NewCmd = &cobra.Command{
	Use:   "new <template-dir>",
	Short: "Resolve a template's variables into a context",
	Long: `Resolve a template's variable specification into a flat context.

The template directory must contain a variable specification
(stencil.yaml or stencil.json). Each variable's default is rendered
against the answers so far, then confirmed or overridden by the
operator. The resolved context is persisted for later replay.

Examples:
  stencil new ./my-template                      # Interactive
  stencil new ./my-template --no-input           # Take every default
  stencil new ./my-template -s project_name=App  # Override a default
  stencil new ./my-template --replay             # Reuse stored answers`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noInput, _ := cmd.Flags().GetBool("no-input")
		replayStored, _ := cmd.Flags().GetBool("replay")
		configFile, _ := cmd.Flags().GetString("config")
		overrides, _ := cmd.Flags().GetStringSlice("set")
		return runNew(args[0], noInput, replayStored, configFile, overrides)
	},
}

func init() {
	NewCmd.Flags().Bool("no-input", false, "Take rendered defaults without prompting")
	NewCmd.Flags().Bool("replay", false, "Reuse the stored context from a previous run")
	NewCmd.Flags().String("config", "", "Path to a stencil config file")
	NewCmd.Flags().StringSliceP("set", "s", nil, "Override a variable default (name=value, repeatable)")
}

func runNew(templatePath string, noInput, replayStored bool, configFile string, rawOverrides []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	noInput = noInput || cfg.NoInput

	name := templateName(templatePath)
	store := replay.NewStore(cfg.GetReplayDir())

	if replayStored {
		ctx, err := storedContext(store, name)
		if err != nil {
			return err
		}
		logger.Infow("replayed stored context", "template", name, "variables", ctx.Len())
		printContext(name, ctx)
		return nil
	}

	root, err := variable.ParseFile(templatePath)
	if err != nil {
		return err
	}

	var asker prompt.Asker = prompt.Auto{}
	if !noInput {
		asker = prompt.NewTerminal(os.Stdin, os.Stdout)
	}

	// A reserved "template" variable redirects resolution into one of the
	// repository's nested templates.
	if tmpl, ok := root.FindChild("template"); ok && resolve.IsTemplateNode(tmpl) {
		nestedDir, err := resolve.ChooseNestedTemplate(asker, tmpl, templatePath, noInput)
		if err != nil {
			return err
		}
		logger.Infow("nested template selected", "dir", nestedDir)
		root, err = variable.ParseFile(nestedDir)
		if err != nil {
			return err
		}
		name = templateName(nestedDir)
	}

	root.ApplyOverrides(cfg.Overrides())
	root.ApplyOverrides(parseOverrides(rawOverrides))

	resolver := resolve.New(render.New(), asker)
	ctx, err := resolver.Resolve(root, noInput)
	if err != nil {
		if errors.IsAbortedError(err) {
			pterm.Warning.Println("Aborted.")
		}
		return err
	}

	if err := store.Dump(name, replay.FromContext(ctx)); err != nil {
		return err
	}
	logger.Debugw("context persisted", "template", name, "file", store.FileName(name))

	printContext(name, ctx)
	return nil
}

// loadConfig uses an explicit config file when given, the layered default
// sources otherwise.
func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadFromFile(configFile)
	}
	return config.Load()
}

// templateName derives the replay key from the template location.
func templateName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.Base(filepath.Clean(abs))
}

// parseOverrides turns name=value pairs into typed values. Boolean tokens
// become booleans so yes/no variables keep their kind; everything else
// stays a string.
func parseOverrides(raw []string) map[string]variable.Value {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]variable.Value, len(raw))
	for _, pair := range raw {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			logger.Warnf("ignoring malformed override %q (want name=value)", pair)
			continue
		}
		if b, ok := prompt.ParseBoolToken(value); ok {
			out[name] = variable.Bool(b)
		} else {
			out[name] = variable.String(value)
		}
	}
	return out
}

func printContext(name string, ctx *variable.Context) {
	pterm.Println()
	pterm.Success.Printf("Resolved %d variables for %s\n", ctx.Len(), name)
	for _, key := range ctx.Keys() {
		v, _ := ctx.Get(key)
		pterm.Printf("  %s: %s\n", pterm.FgCyan.Sprint(key), v.Display())
	}
}

// storedContext loads a persisted document and flattens it to the
// resolved mapping regardless of which form was stored.
func storedContext(store *replay.Store, name string) (*variable.Context, error) {
	doc, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	if doc.Context != nil {
		return doc.Context, nil
	}
	return doc.Tree.Flatten(""), nil
}
