package ports

type ManifestFormat string

const (
	FormatYAML ManifestFormat = "yaml"
	FormatJSON ManifestFormat = "json"
)

// ManifestCodec reads and writes Kubernetes manifests as generic objects.
type ManifestCodec interface {
	// Decode splits a multi-document YAML or JSON stream into objects.
	// Items of a kind: List document are returned individually.
	Decode(data []byte) ([]map[string]interface{}, error)
	Encode(manifests []map[string]interface{}, format ManifestFormat) ([]byte, error)
}
