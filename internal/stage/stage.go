// internal/stage/stage.go
//
// Generator stages are the runtime units of packdocs: each one derives a
// desired document state from the manifest and reports what would change.
// Stages never write files; the runner owns persistence so dry-run and
// review modes can share the exact same stage code.

package stage

import (
	"fmt"

	"github.com/kingrea/packdocs/internal/logbook"
	"github.com/kingrea/packdocs/internal/manifest"
	"github.com/kingrea/packdocs/internal/report"
	"github.com/kingrea/packdocs/internal/shields"
)

// Info describes a stage's identity.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("stage: id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("stage: name is required for %s", i.ID)
	}
	if i.Version == "" {
		return fmt.Errorf("stage: version is required for %s", i.ID)
	}
	return nil
}

// Status enumerates stage run outcomes.
type Status string

const (
	StatusCreated  Status = "created"
	StatusModified Status = "modified"
	StatusNoOp     Status = "no-op"
	StatusSkipped  Status = "skipped"
)

// Result captures one stage execution. NewContent is the full document the
// runner should persist when the status says something changed; Path is where
// it belongs.
type Result struct {
	Status     Status
	Record     report.Record
	Path       string
	NewContent string
	Message    string
}

// Changed reports whether the result carries content worth persisting.
func (r Result) Changed() bool {
	return r.Status == StatusCreated || r.Status == StatusModified
}

// Context carries shared runtime dependencies into every stage.
type Context struct {
	// Dir is the package directory being processed.
	Dir string
	// Manifest is the parsed manifest.json for Dir.
	Manifest *manifest.Manifest
	// Extras are plugin-contributed badges appended to the built-in set.
	Extras []shields.Extra
	// Logbook receives run journal entries; may be nil.
	Logbook *logbook.Logbook
	// ReadmeName is the document file name, normally "README.md".
	ReadmeName string
}

// Stage is implemented by every generator.
type Stage interface {
	Info() Info
	Run(ctx *Context) (Result, error)
}
