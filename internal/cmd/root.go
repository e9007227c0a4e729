package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"commando/internal/app"
	"commando/internal/commit"
	"commando/internal/config"
	"commando/internal/debug"
	"commando/internal/editor"
	"commando/internal/git"
	"commando/internal/prompt"
	"commando/internal/template"
	"commando/internal/tui"
)

var (
	cfgFile         string
	debugFlag       bool
	messageFlag     string
	fileFlag        string
	stdinFlag       bool
	interactiveFlag bool
	typeFlag        string
	scopeFlag       string
	strictFlag      bool
	expandFlag      bool
	templateFlag    string
	dryRunFlag      bool
	yesFlag         bool
	amendFlag       bool
	noVerifyFlag    bool
	rootCmd         = &cobra.Command{
		Use:   "commando",
		Short: "Conventional commit message assistant",
		Long: `commando collects a conventional commit message from flags, a file, stdin,
your editor or an interactive wizard, validates it, previews it and commits.

Editor templates, and messages given with --expand, may use template tags:

  {{ scope }}                         substitute a field or variable
  {% if breaking %}...{% end %}       conditional block
  {% for f in footers %}...{% end %}  loop
  {# note #}                          comment`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCommit,
	}
)

func Execute(version, commitHash, buildTime string) error {
	rootCmd.Version = version
	buildInfo = fmt.Sprintf("commit %s, built %s", commitHash, buildTime)
	return rootCmd.ExecuteContext(context.Background())
}

var buildInfo string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/commando/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug mode (verbose output)")

	flags := rootCmd.Flags()
	flags.StringVarP(&messageFlag, "message", "m", "", "use the given message")
	flags.StringVarP(&fileFlag, "file", "F", "", "read the message from a file (- for stdin)")
	flags.BoolVar(&stdinFlag, "stdin", false, "read the message from stdin")
	flags.BoolVarP(&interactiveFlag, "interactive", "i", false, "build the message with the interactive wizard")
	flags.StringVarP(&typeFlag, "type", "t", "", "commit type, overrides the message")
	flags.StringVarP(&scopeFlag, "scope", "s", "", "commit scope, overrides the message")
	flags.BoolVar(&strictFlag, "strict", false, "fail on undefined template variables")
	flags.BoolVar(&expandFlag, "expand", false, "render -m, -F and --stdin text as a template")
	flags.StringVar(&templateFlag, "template", "", "editor template file")
	flags.BoolVar(&dryRunFlag, "dry-run", false, "preview the message without committing")
	flags.BoolVarP(&yesFlag, "yes", "y", false, "commit without asking for confirmation")
	flags.BoolVar(&amendFlag, "amend", false, "amend the previous commit")
	flags.BoolVar(&noVerifyFlag, "no-verify", false, "skip the pre-commit and commit-msg hooks")
	rootCmd.MarkFlagsMutuallyExclusive("message", "file", "stdin", "interactive")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debug.Enable(debugFlag)
		return nil
	}

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "commando version %s (%s)\n", rootCmd.Version, buildInfo)
	},
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// loadConfig reads the config file and registers its custom types.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	for name, desc := range cfg.Types {
		if err := commit.Register(name, desc); err != nil {
			debug.Warn("ignoring custom type", "name", name, "err", err)
		}
	}
	return cfg, nil
}

// repoContext gathers the template values describing the repository.
func repoContext(ctx context.Context, repo git.Repo) template.Context {
	extra := template.Context{"branch": template.String(""), "files": template.List{}}
	if branch, err := repo.GetCurrentBranch(ctx); err == nil {
		extra["branch"] = template.String(branch)
	}
	if files, err := repo.StagedFiles(ctx); err == nil {
		extra["files"] = template.Strings(files...)
	}
	return extra
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo := git.Repo{}
	ui := app.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	ctrl := &app.Controller{
		Repo:     repo,
		Executor: repo,
		Remote:   repo,
		UI:       ui,
		Options: app.Options{
			DryRun:    dryRunFlag,
			AssumeYes: yesFlag,
			AutoAdd:   cfg.AutoAdd,
			AutoPush:  cfg.AutoPush,
			Commit: git.CommitOptions{
				Amend:    amendFlag,
				NoVerify: noVerifyFlag || cfg.NoVerify,
				SignOff:  cfg.SignOff,
			},
		},
	}

	overrides := app.Overrides{Type: typeFlag, Scope: scopeFlag}
	strict := strictFlag || cfg.StrictTemplates
	source, err := chooseSource(ctrl, cfg, overrides, strict)
	if err != nil {
		return err
	}
	ctrl.Source = source

	if !ctrl.Options.AssumeYes && !ctrl.Options.DryRun && !interactiveFlag && !isTerminal(os.Stdin) {
		return errors.New("stdin is not a terminal; pass --yes to commit without confirmation")
	}

	_, err = ctrl.Run(ctx)
	if errors.Is(err, app.ErrCancelled) || errors.Is(err, tui.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	return err
}

// chooseSource picks where the message comes from: flags, file, stdin,
// the wizard, or the editor when nothing else was asked for.
func chooseSource(ctrl *app.Controller, cfg *config.Config, overrides app.Overrides, strict bool) (app.Source, error) {
	repo := git.Repo{}

	text := func(read func() (string, error)) app.Source {
		return app.SourceFunc(func(ctx context.Context) (*commit.Message, error) {
			msg, err := read()
			if err != nil {
				return nil, err
			}
			src := app.TextSource{
				Text:      msg,
				Overrides: overrides,
				Extra:     repoContext(ctx, repo),
				Expand:    expandFlag || cfg.ExpandMessages,
				Strict:    strict,
			}
			return src.Resolve(ctx)
		})
	}

	switch {
	case messageFlag != "":
		return text(func() (string, error) { return messageFlag, nil }), nil
	case fileFlag != "":
		return text(func() (string, error) { return prompt.ReadFile(fileFlag) }), nil
	case stdinFlag:
		return text(func() (string, error) { return prompt.ReadMessage(os.Stdin) }), nil
	case interactiveFlag:
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return nil, errors.New("interactive mode needs a terminal")
		}
		return wizardSource(ctrl, overrides), nil
	}

	src, err := prompt.LoadTemplate(firstNonEmpty(templateFlag, cfg.Template))
	if err != nil {
		return nil, err
	}
	tpl, err := template.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("editor template: %w", err)
	}
	return app.SourceFunc(func(ctx context.Context) (*commit.Message, error) {
		c := &editor.Collector{
			Editor:   editor.NewSession(editor.Resolve(cfg.Editor)),
			Template: tpl,
			Seed:     overrides.Seed(),
			Extra:    repoContext(ctx, repo),
			Strict:   strict,
			Retries:  2,
		}
		m, err := c.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return m, overrides.Apply(m)
	}), nil
}

// wizardSource runs the TUI. Its confirmation replaces the terminal
// prompt and its option toggles replace the configured ones.
func wizardSource(ctrl *app.Controller, overrides app.Overrides) app.Source {
	repo := git.Repo{}
	return app.SourceFunc(func(ctx context.Context) (*commit.Message, error) {
		subjects, _ := repo.GetRecentCommitMessages(ctx, 50)
		w := &tui.Wizard{
			Seed:    overrides.Seed(),
			Preview: template.MustCompile(prompt.MessageTemplate),
			Extra:   repoContext(ctx, repo),
			Scopes:  tui.ScopesFrom(subjects),
			Options: tui.Options{
				Push:     ctrl.Options.AutoPush,
				NoVerify: ctrl.Options.Commit.NoVerify,
				SignOff:  ctrl.Options.Commit.SignOff,
			},
		}
		res, err := w.Run(ctx)
		if err != nil {
			return nil, err
		}
		ctrl.Options.AssumeYes = true
		ctrl.Options.AutoPush = res.Options.Push
		ctrl.Options.Commit.NoVerify = res.Options.NoVerify
		ctrl.Options.Commit.SignOff = res.Options.SignOff
		return res.Message, nil
	})
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
