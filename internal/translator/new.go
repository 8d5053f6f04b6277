package translator

import (
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

type implTranslator struct {
	completer llm.Completer
	logger    logger.Logger
}

// New creates a Translator instance
func New(completer llm.Completer, log logger.Logger) Translator {
	return &implTranslator{
		completer: completer,
		logger:    log,
	}
}
