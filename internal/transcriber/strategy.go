package transcriber

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// ErrFallback is wrapped by a strategy that wants the next applicable one to run.
var ErrFallback = errors.New("fall back to next strategy")

type audioInfo struct {
	size      int
	estimated float64
}

type strategy struct {
	name     string
	applies  func(info audioInfo) bool
	announce func(info audioInfo) (progress.Stage, string)
	run      func(ctx context.Context, audio []byte, rep progress.Reporter) (string, error)
}

// defaultStrategies is evaluated top-down; the first applicable strategy runs
// and only an ErrFallback moves on to the next one.
func (t *implTranscriber) defaultStrategies() []strategy {
	return []strategy{
		{
			name:    "streaming",
			applies: func(info audioInfo) bool { return info.estimated > t.opts.ShortAudioSeconds },
			announce: func(info audioInfo) (progress.Stage, string) {
				est := int(info.estimated)
				return progress.StageTranscribe, fmt.Sprintf("Video duration ~%dm %ds - using streaming transcription for faster results", est/60, est%60)
			},
			run: t.streaming,
		},
		{
			name:    "direct",
			applies: func(info audioInfo) bool { return info.size <= t.opts.MaxUploadBytes },
			announce: func(info audioInfo) (progress.Stage, string) {
				return progress.StageTranscribe, fmt.Sprintf("Short video (%sMB) - using direct transcription", megabytes(info.size))
			},
			run: t.direct,
		},
		{
			name:    "compress-then-direct",
			applies: func(info audioInfo) bool { return info.size > t.opts.MaxUploadBytes },
			announce: func(info audioInfo) (progress.Stage, string) {
				return progress.StageCompress, fmt.Sprintf("Audio file (%sMB) exceeds %sMB limit - will try compression first, then streaming if needed",
					megabytes(info.size), megabytes(t.opts.MaxUploadBytes))
			},
			run: t.compressThenDirect,
		},
		{
			name:    "streaming-fallback",
			applies: func(audioInfo) bool { return true },
			announce: func(audioInfo) (progress.Stage, string) {
				return progress.StageTranscribe, "Switching to streaming transcription"
			},
			run: t.streaming,
		},
	}
}

// Transcribe picks a strategy once per job from the buffer size.
func (t *implTranscriber) Transcribe(ctx context.Context, audio []byte, rep progress.Reporter) (string, error) {
	info := audioInfo{size: len(audio)}
	if t.opts.BytesPerSecond > 0 {
		info.estimated = float64(len(audio)) / float64(t.opts.BytesPerSecond)
	}

	var lastErr error
	for _, s := range t.strategies {
		if !s.applies(info) {
			continue
		}

		step, msg := s.announce(info)
		rep.Status(step, msg)
		t.logger.Info(ctx, "Transcription strategy %s: %d bytes, ~%.0fs estimated", s.name, info.size, info.estimated)

		text, err := s.run(ctx, audio, rep)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrFallback) {
			return "", fmt.Errorf("%s transcription: %w", s.name, err)
		}

		t.logger.Warn(ctx, "Strategy %s fell back: %v", s.name, err)
		lastErr = err
	}

	return "", fmt.Errorf("no transcription strategy succeeded: %w", lastErr)
}

func megabytes(n int) string {
	return fmt.Sprintf("%.1f", float64(n)/1024/1024)
}
