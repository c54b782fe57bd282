package embedding

// EmbeddingProvider turns a piece of text into a dense vector. The taskType
// hint ("RETRIEVAL_QUERY" vs "RETRIEVAL_DOCUMENT") is honored by providers
// that distinguish query and document embeddings and ignored by the rest.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)
