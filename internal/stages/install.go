package stages

import (
	"path/filepath"

	"github.com/kingrea/packdocs/internal/docmerge"
	"github.com/kingrea/packdocs/internal/docstore"
	"github.com/kingrea/packdocs/internal/installblock"
	"github.com/kingrea/packdocs/internal/report"
	"github.com/kingrea/packdocs/internal/stage"
)

const installStageID = "install"

// InstallStage inserts an installation section when the README lacks one.
type InstallStage struct {
	info stage.Info
}

func registerInstall(reg *stage.Registry) {
	reg.MustRegister(installStageID, func() (stage.Stage, error) {
		return NewInstallStage(), nil
	})
}

// NewInstallStage constructs the install-section stage.
func NewInstallStage() *InstallStage {
	return &InstallStage{info: stage.Info{
		ID:          installStageID,
		Name:        "Installation Section",
		Description: "Adds an installation section to READMEs that have none.",
		Version:     "1.0.0",
	}}
}

// Info implements stage.Stage.
func (s *InstallStage) Info() stage.Info { return s.info }

// Run merges the install section. Existing sections always win; retired
// packages (reference, archived, deprecated) never receive one.
func (s *InstallStage) Run(ctx *stage.Context) (stage.Result, error) {
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
	frag := docmerge.Fragment{Kind: docmerge.InstallSection, Text: installblock.Markdown(ctx.Manifest)}
	pol := docmerge.Policy{InstallSuppressed: ctx.Manifest.InstallSuppressed()}
	merged := docmerge.NewLocator().Merge(content, frag, pol)
	rec := report.Classify(&content, merged, ctx.ReadmeName)
	return stage.Result{
		Status:     statusForKind(rec.Kind),
		Record:     rec,
		Path:       path,
		NewContent: merged,
	}, nil
}
