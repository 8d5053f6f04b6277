package llm

import (
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

// NewCompleter returns the completion backend selected by cfg.LLM.Provider.
// The OpenAI client is reused when the provider is openai.
func NewCompleter(cfg *config.Config, oa *OpenAIClient, log logger.Logger) Completer {
	if cfg.LLM.Provider == "gemini" {
		return NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, "", log)
	}
	return oa
}
