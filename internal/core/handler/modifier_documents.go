package handler

import (
	"encoding/json"
	"fmt"
	"strings"

	"rmod/internal/core/domain"
	"rmod/internal/ports"

	utiljson "k8s.io/apimachinery/pkg/util/json"
	"k8s.io/apimachinery/pkg/util/yaml"
	sigsyaml "sigs.k8s.io/yaml"
)

// readModifierDocuments decodes every RestoreModifier document in a file.
// Documents of other kinds are rejected.
func readModifierDocuments(fileSystem ports.FileSystem, codec ports.ManifestCodec, path string) ([]domain.Modifier, error) {
	data, err := fileSystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	objects, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	modifiers := make([]domain.Modifier, 0, len(objects))
	for i, obj := range objects {
		kind, _ := obj["kind"].(string)
		if kind != domain.RestoreModifierKind {
			return nil, fmt.Errorf("document %d in %s has kind '%s', expected %s", i+1, path, kind, domain.RestoreModifierKind)
		}
		raw, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("document %d in %s: %w", i+1, path, err)
		}
		var rm domain.RestoreModifier
		if err := utiljson.Unmarshal(raw, &rm); err != nil {
			return nil, fmt.Errorf("document %d in %s: %w", i+1, path, err)
		}
		modifier, err := domain.FromRestoreModifier(&rm)
		if err != nil {
			return nil, fmt.Errorf("document %d in %s: %w", i+1, path, err)
		}
		modifiers = append(modifiers, modifier)
	}
	return modifiers, nil
}

// parseScalar reads a flag value as a YAML scalar: 5 is an integer, true a
// boolean. Mappings, sequences, null and anything unparsable stay the
// string that was given.
func parseScalar(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return s
	}
	data, err := yaml.ToJSON([]byte(s))
	if err != nil {
		return s
	}
	var value interface{}
	if err := utiljson.Unmarshal(data, &value); err != nil {
		return s
	}
	switch value.(type) {
	case bool, int64, float64, string:
		return value
	}
	return s
}

func encodeDocument(v interface{}, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return sigsyaml.Marshal(v)
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported output format '%s'", format)
}
