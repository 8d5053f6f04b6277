package transcriber

import (
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
)

// Options holds the thresholds driving strategy selection.
type Options struct {
	// BytesPerSecond converts buffer size into an estimated duration
	// (16kHz, 16-bit, mono).
	BytesPerSecond int
	// ShortAudioSeconds is the estimated duration above which streaming is used.
	ShortAudioSeconds float64
	// MaxUploadBytes is the speech-to-text service's upload limit.
	MaxUploadBytes int
	// ChunkSeconds is the streaming chunk length.
	ChunkSeconds float64
}

func DefaultOptions() Options {
	return Options{
		BytesPerSecond:    16000 * 2,
		ShortAudioSeconds: 60,
		MaxUploadBytes:    25 * 1024 * 1024,
		ChunkSeconds:      30,
	}
}

type implTranscriber struct {
	opts       Options
	tools      media.Toolkit
	stt        llm.Transcriber
	logger     logger.Logger
	strategies []strategy
}

// New creates a Transcriber instance
func New(opts Options, tools media.Toolkit, stt llm.Transcriber, log logger.Logger) Transcriber {
	t := &implTranscriber{
		opts:   opts,
		tools:  tools,
		stt:    stt,
		logger: log,
	}
	t.strategies = t.defaultStrategies()
	return t
}
