package transcriber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

func (t *implTranscriber) direct(ctx context.Context, audio []byte, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageTranscribe, "Sending audio to Whisper for transcription...")

	text, err := t.stt.Transcribe(ctx, filenameFor(audio), audio)
	if err != nil {
		if errors.Is(err, llm.ErrPayloadTooLarge) {
			rep.Status(progress.StageTranscribe, "Audio rejected as too large - switching to streaming method")
			return "", fmt.Errorf("%w: %w", ErrFallback, err)
		}
		return "", err
	}

	rep.Status(progress.StageTranscribe, fmt.Sprintf("Direct transcription completed! Generated %d words (%d characters)",
		len(strings.Fields(text)), len([]rune(text))))
	return text, nil
}

func (t *implTranscriber) compressThenDirect(ctx context.Context, audio []byte, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageCompress, "Attempting compression to avoid chunking...")

	compressed, err := t.tools.Compress(ctx, audio, rep)
	if err != nil {
		rep.Status(progress.StageCompress, "Audio compression failed - switching to streaming method")
		return "", fmt.Errorf("%w: %w", ErrFallback, err)
	}

	if len(compressed) > t.opts.MaxUploadBytes {
		rep.Status(progress.StageCompress, fmt.Sprintf("Compression insufficient (%sMB still > %sMB) - switching to streaming method",
			megabytes(len(compressed)), megabytes(t.opts.MaxUploadBytes)))
		return "", fmt.Errorf("%w: compressed audio is %d bytes", ErrFallback, len(compressed))
	}

	rep.Status(progress.StageTranscribe, fmt.Sprintf("Compression successful (%sMB) - proceeding with direct transcription", megabytes(len(compressed))))
	return t.direct(ctx, compressed, rep)
}

// filenameFor names the upload so the service can infer the container.
func filenameFor(audio []byte) string {
	switch {
	case bytes.HasPrefix(audio, []byte("OggS")):
		return "audio.ogg"
	case bytes.HasPrefix(audio, []byte("RIFF")):
		return "audio.wav"
	case bytes.HasPrefix(audio, []byte{0x1a, 0x45, 0xdf, 0xa3}):
		return "audio.webm"
	case len(audio) >= 8 && string(audio[4:8]) == "ftyp":
		return "audio.m4a"
	default:
		return "audio.mp3"
	}
}
