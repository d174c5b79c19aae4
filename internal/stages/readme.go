package stages

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/packdocs/internal/docmerge"
	"github.com/kingrea/packdocs/internal/docstore"
	"github.com/kingrea/packdocs/internal/installblock"
	"github.com/kingrea/packdocs/internal/report"
	"github.com/kingrea/packdocs/internal/shields"
	"github.com/kingrea/packdocs/internal/stage"
)

const readmeStageID = "readme"

// previewImage is embedded in freshly composed READMEs when present.
const previewImage = "preview.png"

// ReadmeStage is the full document pipeline: it creates a README from
// scratch when none exists, otherwise merges the badge block and install
// section while preserving everything hand-written.
type ReadmeStage struct {
	info stage.Info
}

func registerReadme(reg *stage.Registry) {
	reg.MustRegister(readmeStageID, func() (stage.Stage, error) {
		return NewReadmeStage(), nil
	})
}

// NewReadmeStage constructs the README stage.
func NewReadmeStage() *ReadmeStage {
	return &ReadmeStage{info: stage.Info{
		ID:          readmeStageID,
		Name:        "README",
		Description: "Creates or updates the README from manifest state.",
		Version:     "1.0.0",
	}}
}

// Info implements stage.Stage.
func (s *ReadmeStage) Info() stage.Info { return s.info }

// Run computes the desired README and classifies the change.
func (s *ReadmeStage) Run(ctx *stage.Context) (stage.Result, error) {
	path := filepath.Join(ctx.Dir, ctx.ReadmeName)
	content, exists, err := docstore.Read(path)
	if err != nil {
		return stage.Result{}, err
	}

	m := ctx.Manifest
	var badgeLines []string
	if m.ShieldsEnabled() {
		badgeLines = shields.Lines(m, ctx.Extras)
	}
	installText := ""
	if !m.InstallSuppressed() {
		installText = installblock.Markdown(m)
	}

	if !exists {
		composed := docmerge.ComposeNew(docmerge.ComposeInput{
			Title:        m.EffectiveTitle(),
			Description:  m.EffectiveDescription(),
			BadgeLines:   badgeLines,
			Install:      installText,
			PreviewImage: previewName(ctx.Dir),
		})
		rec := report.Classify(nil, composed, ctx.ReadmeName)
		return stage.Result{
			Status:     statusForKind(rec.Kind),
			Record:     rec,
			Path:       path,
			NewContent: composed,
		}, nil
	}

	merged := content
	locator := docmerge.NewLocator(shields.Names(ctx.Extras)...)
	if len(badgeLines) > 0 {
		frag := docmerge.Fragment{Kind: docmerge.BadgeBlock, Text: strings.Join(badgeLines, "\n")}
		merged = locator.Merge(merged, frag, docmerge.Policy{})
	}
	frag := docmerge.Fragment{Kind: docmerge.InstallSection, Text: installblock.Markdown(m)}
	merged = locator.Merge(merged, frag, docmerge.Policy{InstallSuppressed: m.InstallSuppressed()})

	rec := report.Classify(&content, merged, ctx.ReadmeName)
	return stage.Result{
		Status:     statusForKind(rec.Kind),
		Record:     rec,
		Path:       path,
		NewContent: merged,
	}, nil
}

// previewName reports the preview image name when the package ships one.
func previewName(dir string) string {
	if _, err := os.Stat(filepath.Join(dir, previewImage)); err == nil {
		return previewImage
	}
	return ""
}
