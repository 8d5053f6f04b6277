package llm

import (
	"context"
	"errors"
)

var (
	// ErrPayloadTooLarge marks a transcription request rejected for size (HTTP 413).
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrEmptyCompletion is returned when the service answers with no text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// Request is one chat completion call.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completer generates text from a system instruction and user content.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Transcriber turns an audio file into text. No source language is forced.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}
