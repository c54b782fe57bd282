package dto

// PublishEmbedChunkMessage is the payload the indexer publishes per corpus
// chunk for the embedding consumer.
type PublishEmbedChunkMessage struct {
	Document   string `json:"document"`
	Label      string `json:"label"`
	Text       string `json:"text"`
	ChunkIndex int    `json:"chunk_index"`
}
