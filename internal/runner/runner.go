// internal/runner/runner.go
//
// The runner drives the whole pipeline per package directory: load manifest,
// run the selected stages in order, persist changed documents, report. A bad
// directory never aborts the batch; failures are counted and surfaced in the
// aggregate result.

package runner

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kingrea/packdocs/internal/docstore"
	"github.com/kingrea/packdocs/internal/logbook"
	"github.com/kingrea/packdocs/internal/manifest"
	"github.com/kingrea/packdocs/internal/report"
	"github.com/kingrea/packdocs/internal/shields"
	"github.com/kingrea/packdocs/internal/stage"
)

// DefaultReadmeName is the document maintained per package directory.
const DefaultReadmeName = "README.md"

// Runner executes stages across package directories.
type Runner struct {
	Registry *stage.Registry
	Reporter *report.Reporter
	Logbook  *logbook.Logbook
	// Extras are plugin-contributed badges.
	Extras []shields.Extra
	// StageIDs are executed in declared order for every directory.
	StageIDs []string
	// DryRun previews changes without persisting anything.
	DryRun bool
	// Verbose prints per-directory headers and a batch summary.
	Verbose bool
	// ReadmeName overrides the document name (tests); empty means default.
	ReadmeName string
}

// Summary aggregates a batch run.
type Summary struct {
	Processed int
	Failed    int
}

// Pending is one unapplied change collected for interactive review.
type Pending struct {
	Dir     string
	StageID string
	Result  stage.Result
}

// Run processes every directory sequentially. It never stops early: each
// directory's failure is reported and counted, and a non-nil error is
// returned only as the aggregate verdict.
func (r *Runner) Run(dirs []string) (Summary, error) {
	var sum Summary
	mode := report.Apply
	if r.DryRun {
		mode = report.DryRun
	}
	for _, dir := range dirs {
		if r.Verbose {
			fmt.Fprintf(r.Reporter.Out, "Generating docs for %s\n", dir)
		}
		if err := r.processDir(dir, mode); err != nil {
			r.Reporter.Errorf("Error processing %s: %v", dir, err)
			r.Logbook.Error("%s: %v", dir, err)
			sum.Failed++
			continue
		}
		sum.Processed++
	}
	if r.Verbose && len(dirs) > 1 {
		fmt.Fprintf(r.Reporter.Out, "\nProcessed %d/%d directories successfully\n", sum.Processed, len(dirs))
	}
	if sum.Failed > 0 {
		return sum, fmt.Errorf("runner: %d of %d directories failed", sum.Failed, len(dirs))
	}
	return sum, nil
}

// Collect evaluates every directory without persisting and gathers the
// changes a review session could apply.
func (r *Runner) Collect(dirs []string) ([]Pending, Summary, error) {
	var sum Summary
	var pending []Pending
	for _, dir := range dirs {
		results, err := r.evaluate(dir)
		if err != nil {
			if errors.Is(err, manifest.ErrNotFound) {
				r.Logbook.Warn("%s: skipped, no manifest", dir)
				sum.Processed++
				continue
			}
			r.Reporter.Errorf("Error processing %s: %v", dir, err)
			r.Logbook.Error("%s: %v", dir, err)
			sum.Failed++
			continue
		}
		sum.Processed++
		for _, res := range results {
			if res.result.Changed() {
				pending = append(pending, Pending{Dir: dir, StageID: res.id, Result: res.result})
			}
		}
	}
	var err error
	if sum.Failed > 0 {
		err = fmt.Errorf("runner: %d of %d directories failed", sum.Failed, len(dirs))
	}
	return pending, sum, err
}

// Apply persists one reviewed change.
func (r *Runner) Apply(p Pending) error {
	if err := docstore.WriteAtomic(p.Result.Path, p.Result.NewContent); err != nil {
		r.Logbook.Error("%s: apply %s: %v", p.Dir, p.StageID, err)
		return err
	}
	r.Logbook.Info("%s: %s applied (%s)", p.Dir, p.StageID, p.Result.Status)
	return nil
}

func (r *Runner) readmeName() string {
	if r.ReadmeName != "" {
		return r.ReadmeName
	}
	return DefaultReadmeName
}

// processDir runs the stage sequence for one directory, persisting between
// stages so later stages see earlier results.
func (r *Runner) processDir(dir string, mode report.Mode) error {
	m, err := manifest.Load(dir)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) && r.DryRun {
			// README-only previews are allowed to proceed without a manifest
			// elsewhere in the batch; this directory is just skipped.
			r.Reporter.Skipped(r.readmeName(), "manifest.json does not exist yet")
			r.Logbook.Warn("%s: skipped, no manifest", dir)
			return nil
		}
		return err
	}
	ctx := &stage.Context{
		Dir:        dir,
		Manifest:   m,
		Extras:     r.Extras,
		Logbook:    r.Logbook,
		ReadmeName: r.readmeName(),
	}
	for _, id := range r.StageIDs {
		st, err := r.Registry.Resolve(id)
		if err != nil {
			return err
		}
		res, err := st.Run(ctx)
		if err != nil {
			return fmt.Errorf("stage %s: %w", id, err)
		}
		if res.Status == stage.StatusSkipped {
			r.Reporter.Skipped(res.Record.Label, res.Message)
			continue
		}
		if res.Changed() && !r.DryRun {
			if err := docstore.WriteAtomic(res.Path, res.NewContent); err != nil {
				return fmt.Errorf("stage %s: %w", id, err)
			}
		}
		r.Reporter.Report(res.Record, mode)
		r.Logbook.Info("%s: %s %s", dir, id, res.Status)
	}
	return nil
}

type evaluated struct {
	id     string
	result stage.Result
}

// evaluate runs the stage sequence without persisting anything.
func (r *Runner) evaluate(dir string) ([]evaluated, error) {
	m, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}
	ctx := &stage.Context{
		Dir:        dir,
		Manifest:   m,
		Extras:     r.Extras,
		Logbook:    r.Logbook,
		ReadmeName: r.readmeName(),
	}
	var out []evaluated
	for _, id := range r.StageIDs {
		st, err := r.Registry.Resolve(id)
		if err != nil {
			return nil, err
		}
		res, err := st.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", id, err)
		}
		out = append(out, evaluated{id: id, result: res})
	}
	return out, nil
}

// Abs resolves each directory argument, keeping the original string when
// resolution fails so error messages stay recognizable.
func Abs(dirs []string) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		if abs, err := filepath.Abs(d); err == nil {
			out[i] = abs
		} else {
			out[i] = d
		}
	}
	return out
}
