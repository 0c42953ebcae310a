package domain

// KeyPrefix namespaces every key the service writes to the store.
const KeyPrefix = "assist:"

// VectorConfig pairs an embedding model with its vector dimensionality. The
// two must agree everywhere: index schemas, stored blobs and query vectors.
type VectorConfig struct {
	Model      string
	Dimensions int
}

// DefaultVectorConfig is the model the service embeds with unless configured
// otherwise.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:      "text-embedding-3-small",
		Dimensions: 1536,
	}
}
