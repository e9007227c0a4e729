package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"commando/internal/commit"
	"commando/internal/debug"
	"commando/internal/template"
)

var (
	valuesFile   string
	setValues    []string
	renderStrict bool

	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect and try out commit templates",
}

var templateCheckCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Compile templates and report errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := checkTemplates(cmd.Context(), args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		failed := 0
		for i, path := range args {
			if results[i] != nil {
				failed++
				failColor.Fprint(out, "FAIL ")
				fmt.Fprintf(out, "%s:%v\n", path, results[i])
				continue
			}
			okColor.Fprint(out, "ok   ")
			fmt.Fprintln(out, path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d templates failed to compile", failed, len(args))
		}
		return nil
	},
}

// checkTemplates compiles every path concurrently. The returned slice
// holds each file's compile error, in argument order; the error return
// is reserved for files that could not be read.
func checkTemplates(ctx context.Context, paths []string) ([]error, error) {
	results := make([]error, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			_, results[i] = template.Compile(string(src))
			debug.Log("compiled template", "path", path, "err", results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

var templateRenderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a template against values from YAML",
	Long: `Render a template against values from a YAML file and --set flags.

Without --values the context is a sample commit message, so the default
editor template can be tried directly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := compileFile(args[0])
		if err != nil {
			return err
		}
		ctx, err := renderContext(valuesFile, setValues)
		if err != nil {
			return err
		}
		out, err := tpl.Render(ctx, template.WithStrict(renderStrict))
		if err != nil {
			return fmt.Errorf("%s:%w", args[0], err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

// renderContext builds the context from a YAML file and key=value pairs.
// Without a file it starts from a sample message.
func renderContext(path string, sets []string) (template.Context, error) {
	var ctx template.Context
	if path == "" {
		sample := &commit.Message{
			Type:        commit.Feat,
			Scope:       "cli",
			Description: "add template command",
			Body:        "Lets users try templates before committing.",
			Footers:     []commit.Footer{{Key: "Refs", Value: "#42"}},
		}
		ctx = sample.Context(template.Context{
			"branch":   template.String("main"),
			"files":    template.Strings("internal/cmd/template.go"),
			"problems": template.List{},
		})
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read values: %w", err)
		}
		var values map[string]any
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse values %s: %w", path, err)
		}
		ctx = template.NewContext(values)
	}
	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--set %q: want key=value", kv)
		}
		ctx[k] = template.String(v)
	}
	return ctx, nil
}

func compileFile(path string) (*template.Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	tpl, err := template.Compile(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return tpl, nil
}

var templateTokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		toks, err := template.Tokenize(string(src))
		for _, tok := range toks {
			fmt.Fprintln(cmd.OutOrStdout(), tok)
		}
		if err != nil {
			return fmt.Errorf("%s:%w", args[0], err)
		}
		return nil
	},
}

var templateASTCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := compileFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), template.Pretty(tpl))
		fmt.Fprintf(cmd.OutOrStdout(), "variables: %s\n", strings.Join(tpl.Variables(), ", "))
		return nil
	},
}

func init() {
	templateRenderCmd.Flags().StringVar(&valuesFile, "values", "", "YAML file with template values")
	templateRenderCmd.Flags().StringArrayVar(&setValues, "set", nil, "set a string value, key=value (repeatable)")
	templateRenderCmd.Flags().BoolVar(&renderStrict, "strict", false, "fail on undefined variables")

	templateCmd.AddCommand(templateCheckCmd)
	templateCmd.AddCommand(templateRenderCmd)
	templateCmd.AddCommand(templateTokensCmd)
	templateCmd.AddCommand(templateASTCmd)
}
