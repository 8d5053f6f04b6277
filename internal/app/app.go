// Package app wires the pipeline components from configuration.
package app

import (
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
	"github.com/nguyentantai21042004/recap-flow/internal/tts"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

// Components is everything a binary needs to serve jobs.
type Components struct {
	Processor processor.Processor
	Completer llm.Completer
	Speech    tts.Synthesizer
}

// Build creates the component graph:
// executor -> media -> llm -> transcriber/translator/summarizer -> processor.
func Build(cfg *config.Config, log logger.Logger) *Components {
	exec := executor.New()
	m := media.New(cfg, exec, log)

	openAI := llm.NewOpenAI(cfg.OpenAI)
	completer := llm.NewCompleter(cfg, openAI, log)

	proc := processor.New(cfg,
		m,
		transcriber.New(transcriber.DefaultOptions(), m, openAI, log),
		translator.New(completer, log),
		summarizer.New(completer, log),
		log,
	)

	return &Components{
		Processor: proc,
		Completer: completer,
		Speech:    tts.NewElevenLabs(cfg.ElevenLabs),
	}
}
