package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Go badge plugins declare a BadgeDefinitions function returning the badge
// fields as string maps; the loader decodes and validates them against the
// same schema the YAML files use.
const goDefinitionFuncName = "BadgeDefinitions"

// badgeFields maps the schema's field names onto BadgeDefinition setters, so
// unknown keys in a plugin fail loudly instead of silently rendering nothing.
var badgeFields = map[string]func(*BadgeDefinition, string){
	"id":         func(d *BadgeDefinition, v string) { d.ID = v },
	"name":       func(d *BadgeDefinition, v string) { d.Name = v },
	"label":      func(d *BadgeDefinition, v string) { d.Label = v },
	"value":      func(d *BadgeDefinition, v string) { d.Value = v },
	"value_from": func(d *BadgeDefinition, v string) { d.ValueFrom = v },
	"color":      func(d *BadgeDefinition, v string) { d.Color = v },
}

// LoadGoDefinitionDir evaluates every .go file in dir and collects the badges
// its BadgeDefinitions() declares.
func LoadGoDefinitionDir(dir string) ([]DefinitionFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: read %s: %w", trimmed, err)
	}
	var defs []DefinitionFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".go" {
			continue
		}
		fileDefs, err := loadGoDefinitionFile(filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}
	if len(defs) == 0 {
		return nil, nil
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Path < defs[j].Path })
	return defs, nil
}

func loadGoDefinitionFile(path string) ([]DefinitionFile, error) {
	i := interp.New(interp.Options{})
	i.Use(stdlib.Symbols)
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("plugin: interpret %s: %w", path, err)
	}
	fnValue, err := i.Eval(goDefinitionFuncName)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s must define %s() ([]map[string]any, error): %w", path, goDefinitionFuncName, err)
	}
	raw, err := callBadgeFunc(fnValue)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	defs := make([]BadgeDefinition, 0, len(raw))
	for idx, fields := range raw {
		def, err := definitionFromFields(fields)
		if err == nil {
			err = def.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("plugin: %s definition[%d]: %w", path, idx+1, err)
		}
		defs = append(defs, def.Normalized())
	}
	return tagPaths(path, defs), nil
}

// definitionFromFields builds a badge definition from one plugin-declared
// map. Every value must be a string and every key must be in the schema.
func definitionFromFields(fields map[string]any) (BadgeDefinition, error) {
	var def BadgeDefinition
	for key, value := range fields {
		set, ok := badgeFields[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			return BadgeDefinition{}, fmt.Errorf("unknown badge field %q", key)
		}
		s, ok := value.(string)
		if !ok {
			return BadgeDefinition{}, fmt.Errorf("badge field %q must be a string, got %T", key, value)
		}
		set(&def, s)
	}
	return def, nil
}

// callBadgeFunc invokes the interpreted BadgeDefinitions function. yaegi may
// hand the slice back behind a generic reflect value, so the element
// conversion is done per entry.
func callBadgeFunc(fn reflect.Value) ([]map[string]any, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", goDefinitionFuncName)
	}
	results := fn.Call(nil)
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return ([]map[string]any[, error])", goDefinitionFuncName)
	}
	if len(results) == 2 && !results[1].IsNil() {
		if err, ok := results[1].Interface().(error); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%s returned a non-error second value", goDefinitionFuncName)
	}
	slice := results[0]
	if direct, ok := slice.Interface().([]map[string]any); ok {
		return direct, nil
	}
	if slice.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%s must return []map[string]any", goDefinitionFuncName)
	}
	maps := make([]map[string]any, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		entry, ok := slice.Index(i).Interface().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not map[string]any", goDefinitionFuncName, i)
		}
		maps[i] = entry
	}
	return maps, nil
}
