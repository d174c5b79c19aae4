package stages

import (
	"path/filepath"
	"strings"

	"github.com/kingrea/packdocs/internal/docmerge"
	"github.com/kingrea/packdocs/internal/docstore"
	"github.com/kingrea/packdocs/internal/report"
	"github.com/kingrea/packdocs/internal/shields"
	"github.com/kingrea/packdocs/internal/stage"
)

const shieldsStageID = "shields"

// ShieldsStage refreshes the badge block in an existing README.
type ShieldsStage struct {
	info stage.Info
}

func registerShields(reg *stage.Registry) {
	reg.MustRegister(shieldsStageID, func() (stage.Stage, error) {
		return NewShieldsStage(), nil
	})
}

// NewShieldsStage constructs the badge-block stage.
func NewShieldsStage() *ShieldsStage {
	return &ShieldsStage{info: stage.Info{
		ID:          shieldsStageID,
		Name:        "Shield Badges",
		Description: "Regenerates the README badge block from manifest state.",
		Version:     "1.0.0",
	}}
}

// Info implements stage.Stage.
func (s *ShieldsStage) Info() stage.Info { return s.info }

// Run merges a freshly rendered badge block into the README. A missing
// README is skipped: badges alone are not worth creating a document for.
func (s *ShieldsStage) Run(ctx *stage.Context) (stage.Result, error) {
	path := filepath.Join(ctx.Dir, ctx.ReadmeName)
	content, exists, err := docstore.Read(path)
	if err != nil {
		return stage.Result{}, err
	}
	if !exists {
		return stage.Result{
			Status:  stage.StatusSkipped,
			Record:  report.Record{Kind: report.NoChange, Label: ctx.ReadmeName},
			Message: ctx.ReadmeName + " does not exist",
		}, nil
	}
	if !ctx.Manifest.ShieldsEnabled() {
		return stage.Result{
			Status:  stage.StatusNoOp,
			Record:  report.Record{Kind: report.NoChange, Label: ctx.ReadmeName},
			Message: "shields disabled in manifest",
		}, nil
	}
	block := strings.Join(shields.Lines(ctx.Manifest, ctx.Extras), "\n")
	locator := docmerge.NewLocator(shields.Names(ctx.Extras)...)
	merged := locator.Merge(content, docmerge.Fragment{Kind: docmerge.BadgeBlock, Text: block}, docmerge.Policy{})
	rec := report.Classify(&content, merged, ctx.ReadmeName)
	return stage.Result{
		Status:     statusForKind(rec.Kind),
		Record:     rec,
		Path:       path,
		NewContent: merged,
	}, nil
}

func statusForKind(kind report.Kind) stage.Status {
	switch kind {
	case report.Created:
		return stage.StatusCreated
	case report.Modified:
		return stage.StatusModified
	}
	return stage.StatusNoOp
}
