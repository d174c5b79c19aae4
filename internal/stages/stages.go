// Package stages holds the built-in generator stages: shields (badge block
// only), install (installation section only), and readme (full document
// pipeline including creation from scratch). Each stage derives desired
// content from the manifest and classifies the change; none of them persist.
package stages

import "github.com/kingrea/packdocs/internal/stage"

// RegisterBuiltins installs all built-in stage factories into the registry.
func RegisterBuiltins(reg *stage.Registry) {
	if reg == nil {
		return
	}
	registerShields(reg)
	registerInstall(reg)
	registerReadme(reg)
}
