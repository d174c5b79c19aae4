// internal/cli/root.go
//
// Command-line surface for packdocs. The root command runs the configured
// stages over one or more package directories; `packdocs stages` lists the
// available generators.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/packdocs/internal/config"
	"github.com/kingrea/packdocs/internal/logbook"
	"github.com/kingrea/packdocs/internal/report"
	"github.com/kingrea/packdocs/internal/runner"
	"github.com/kingrea/packdocs/internal/stage"
	"github.com/kingrea/packdocs/internal/stages"
	"github.com/kingrea/packdocs/internal/tui"
	"github.com/kingrea/packdocs/plugins"
)

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	dryRun       bool
	verbose      bool
	review       bool
	stageIDs     []string
	maxDiffLines int
	maxDiffSet   bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "packdocs [directory...]",
		Short: "Keep package READMEs in sync with their manifests",
		Long: `packdocs regenerates the derived parts of a package README from its
manifest.json: the badge block and the installation section. Everything the
author wrote by hand is preserved; running twice changes nothing.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = []string{"."}
			}
			opts.maxDiffSet = cmd.Flags().Changed("max-diff-lines")
			return runRoot(cmd, dirs, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "preview changes without writing any files")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print per-directory progress and a batch summary")
	cmd.Flags().StringSliceVar(&opts.stageIDs, "stage", nil, "stage to run (repeatable; defaults come from .packdocs/config.yaml)")
	cmd.Flags().BoolVar(&opts.review, "review", false, "review each change interactively before applying it")
	cmd.Flags().IntVar(&opts.maxDiffLines, "max-diff-lines", 0, "truncate printed diffs beyond this many lines (0 disables)")

	cmd.AddCommand(newStagesCmd())
	return cmd
}

func runRoot(cmd *cobra.Command, dirs []string, opts rootOptions) error {
	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli: resolve working directory: %w", err)
	}
	if err := config.InitPackdocsDir(projectDir); err != nil {
		return err
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return err
	}
	lb, err := logbook.New(cfg.LogbookPath())
	if err != nil {
		return err
	}

	reg := stage.NewRegistry()
	stages.RegisterBuiltins(reg)
	extras, err := plugins.LoadBadgePlugins(cfg)
	if err != nil {
		return err
	}

	color := resolveColor(cfg.Project.Presentation.Color)
	maxDiff := cfg.Project.Presentation.MaxDiffLines
	if opts.maxDiffSet {
		maxDiff = opts.maxDiffLines
	}
	stageIDs := opts.stageIDs
	if len(stageIDs) == 0 {
		stageIDs = cfg.Project.Stages.Default
	}

	r := &runner.Runner{
		Registry: reg,
		Reporter: report.New(cmd.OutOrStdout(), color, maxDiff),
		Logbook:  lb,
		Extras:   extras,
		StageIDs: stageIDs,
		DryRun:   opts.dryRun,
		Verbose:  opts.verbose,
	}

	targets := runner.Abs(dirs)
	if opts.review {
		return runReview(cmd, r, targets, color)
	}
	_, err = r.Run(targets)
	return err
}

// reviewSession is swapped out by tests; the real one opens the TUI.
var reviewSession = tui.Run

// runReview collects pending changes and reviews them interactively. A bad
// directory is reported and folded into the final verdict, like in Run; the
// changes the good directories produced are still reviewed.
func runReview(cmd *cobra.Command, r *runner.Runner, dirs []string, color bool) error {
	pending, _, collectErr := r.Collect(dirs)
	if len(pending) == 0 {
		if collectErr != nil {
			return collectErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review; all documents are up to date.")
		return nil
	}
	outcome, err := reviewSession(pending, r.Apply, r.Logbook, color)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d, skipped %d of %d pending changes\n",
		outcome.Applied, outcome.Skipped, len(pending))
	if outcome.Failed > 0 {
		return fmt.Errorf("cli: %d changes failed to apply", outcome.Failed)
	}
	return collectErr
}

// resolveColor maps the config's color mode to a concrete choice. "auto"
// follows NO_COLOR and the terminal profile.
func resolveColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return report.ColorEnabled()
}
