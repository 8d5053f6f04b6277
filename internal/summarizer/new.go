package summarizer

import (
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

type implSummarizer struct {
	completer llm.Completer
	logger    logger.Logger
}

// New creates a Summarizer backed by the given completion service.
func New(completer llm.Completer, log logger.Logger) Summarizer {
	return &implSummarizer{
		completer: completer,
		logger:    log,
	}
}
