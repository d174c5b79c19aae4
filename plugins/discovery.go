package plugins

import (
	"fmt"

	"github.com/kingrea/packdocs/internal/config"
	"github.com/kingrea/packdocs/internal/shields"
)

// LoadBadgePlugins discovers YAML and Go badge definitions under
// .packdocs/badges and returns them as renderer extras, in path order.
func LoadBadgePlugins(cfg *config.Config) ([]shields.Extra, error) {
	if cfg == nil {
		return nil, nil
	}
	defs, err := loadAllDefinitionFiles(cfg.BadgePluginsDir())
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, nil
	}
	seen := make(map[string]string)
	extras := make([]shields.Extra, 0, len(defs))
	for _, file := range defs {
		def := file.Definition
		if existing, ok := seen[def.ID]; ok {
			return nil, fmt.Errorf("plugin: duplicate badge id %s (%s and %s)", def.ID, existing, file.Path)
		}
		seen[def.ID] = file.Path
		extras = append(extras, def.Extra())
	}
	return extras, nil
}

func loadAllDefinitionFiles(dir string) ([]DefinitionFile, error) {
	yamlDefs, err := LoadDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	goDefs, err := LoadGoDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	return append(yamlDefs, goDefs...), nil
}
