package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// NewPipelineLogger opens a plain-text append-only trace log for the retrieval
// pipeline. Every retrieval decision (query expansion, candidate scores, answer
// acceptance) goes here so a full RAG turn can be replayed line by line, which
// the structured system log is too noisy for. Falls back to stderr when the log
// directory cannot be created.
func NewPipelineLogger(path string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(os.Stderr, "[rag] ", log.LstdFlags)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(os.Stderr, "[rag] ", log.LstdFlags)
	}

	return log.New(io.Writer(f), "", log.LstdFlags)
}
