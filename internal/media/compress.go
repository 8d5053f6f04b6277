package media

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// Compress re-encodes audio to 12 kbit/s mono Opus at 16kHz.
func (m *Media) Compress(ctx context.Context, audio []byte, rep progress.Reporter) ([]byte, error) {
	rep.Status(progress.StageCompress, fmt.Sprintf("Compressing %sMB audio file...", megabytes(len(audio))))

	input, err := m.writeTemp("compress-in", ".audio", audio)
	if err != nil {
		return nil, err
	}
	defer m.cleanupTempFile(ctx, input)

	output := m.tempPath("compress-out", ".ogg")
	defer m.cleanupTempFile(ctx, output)

	total, err := m.probe(ctx, input)
	if err != nil {
		m.logger.Debug(ctx, "Probe before compression failed: %v", err)
	}

	rep.Status(progress.StageCompress, "Running FFmpeg compression...")

	args := []string{
		"-y",
		"-i", input,
		"-vn",
		"-c:a", "libopus",
		"-b:a", "12k",
		"-ac", "1",
		"-ar", "16000",
		"-f", "ogg",
		output,
	}
	err = m.transcode(ctx, args, total, func(pct int) {
		rep.Status(progress.StageCompress, fmt.Sprintf("Compressing audio... %d%%", pct))
	})
	if err != nil {
		return nil, fmt.Errorf("compress audio: %w", err)
	}

	compressed, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("read compressed audio: %w", err)
	}

	rep.Status(progress.StageCompress, fmt.Sprintf("Audio compressed: %sMB -> %sMB", megabytes(len(audio)), megabytes(len(compressed))))
	return compressed, nil
}
