package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"rmod/internal/ports"

	utiljson "k8s.io/apimachinery/pkg/util/json"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	sigsyaml "sigs.k8s.io/yaml"
)

// lookahead is how far the decoder peeks to tell JSON from YAML.
const lookahead = 1024

var _ ports.ManifestCodec = (*KubernetesCodec)(nil)

type KubernetesCodec struct{}

func ProvideKubernetesCodec() *KubernetesCodec {
	return &KubernetesCodec{}
}

func (c *KubernetesCodec) Decode(data []byte) ([]map[string]interface{}, error) {
	decoder := utilyaml.NewYAMLOrJSONDecoder(bytes.NewReader(data), lookahead)
	manifests := []map[string]interface{}{}
	for document := 1; ; document++ {
		var raw json.RawMessage
		err := decoder.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest document %d: %w", document, err)
		}

		obj := map[string]interface{}{}
		if len(raw) > 0 && string(raw) != "null" {
			if err := utiljson.Unmarshal(raw, &obj); err != nil {
				return nil, fmt.Errorf("manifest document %d is not an object: %w", document, err)
			}
		}
		if len(obj) == 0 {
			continue
		}
		manifests = append(manifests, flatten(obj)...)
	}
	return manifests, nil
}

// flatten expands a kind: List document into its items.
func flatten(obj map[string]interface{}) []map[string]interface{} {
	kind, _ := obj["kind"].(string)
	items, isList := obj["items"].([]interface{})
	if kind != "List" || !isList {
		return []map[string]interface{}{obj}
	}
	result := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok && len(m) > 0 {
			result = append(result, m)
		}
	}
	return result
}

func (c *KubernetesCodec) Encode(manifests []map[string]interface{}, format ports.ManifestFormat) ([]byte, error) {
	switch format {
	case ports.FormatJSON:
		return encodeJSON(manifests)
	case ports.FormatYAML, "":
		return encodeYAML(manifests)
	}
	return nil, fmt.Errorf("unsupported manifest format '%s', expected yaml or json", format)
}

func encodeYAML(manifests []map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	for i, m := range manifests {
		data, err := sigsyaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to encode manifest %d: %w", i+1, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func encodeJSON(manifests []map[string]interface{}) ([]byte, error) {
	var value interface{}
	if len(manifests) == 1 {
		value = manifests[0]
	} else {
		items := make([]interface{}, 0, len(manifests))
		for _, m := range manifests {
			items = append(items, m)
		}
		value = map[string]interface{}{
			"apiVersion": "v1",
			"kind":       "List",
			"items":      items,
		}
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifests: %w", err)
	}
	return append(data, '\n'), nil
}
