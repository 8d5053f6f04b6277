package processor

import (
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
)

type implProcessor struct {
	cfg         *config.Config
	acquirer    media.Acquirer
	transcriber transcriber.Transcriber
	translator  translator.Translator
	summarizer  summarizer.Summarizer
	logger      logger.Logger
	slots       *semaphore
}

// New creates a Processor instance
func New(
	cfg *config.Config,
	acq media.Acquirer,
	tr transcriber.Transcriber,
	tl translator.Translator,
	sm summarizer.Summarizer,
	log logger.Logger,
) Processor {
	capacity := cfg.Performance.MaxConcurrent
	if capacity <= 0 {
		capacity = 2
	}

	return &implProcessor{
		cfg:         cfg,
		acquirer:    acq,
		transcriber: tr,
		translator:  tl,
		summarizer:  sm,
		logger:      log,
		slots:       newSemaphore(capacity),
	}
}
