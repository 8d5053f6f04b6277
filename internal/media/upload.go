package media

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// ExtractUpload strips the video track from an uploaded MP4 and returns
// 16kHz mono MP3 audio.
func (m *Media) ExtractUpload(ctx context.Context, data []byte, rep progress.Reporter) ([]byte, error) {
	rep.Status(progress.StageAcquire, "Processing uploaded video file...")

	input, err := m.writeTemp("upload", ".mp4", data)
	if err != nil {
		return nil, err
	}
	defer m.cleanupTempFile(ctx, input)

	output := m.tempPath("extracted", ".mp3")
	defer m.cleanupTempFile(ctx, output)

	rep.Status(progress.StageAcquire, fmt.Sprintf("Extracting audio from %sMB video file...", megabytes(len(data))))

	total, err := m.probe(ctx, input)
	if err != nil {
		m.logger.Debug(ctx, "Probe upload failed, no percent progress: %v", err)
	}

	args := []string{
		"-y",
		"-i", input,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "libmp3lame",
		"-b:a", "32k",
		"-f", "mp3",
		output,
	}
	err = m.transcode(ctx, args, total, func(pct int) {
		rep.Status(progress.StageAcquire, fmt.Sprintf("Extracting audio... %d%%", pct))
	})
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}

	audio, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("read extracted audio: %w", err)
	}

	rep.Status(progress.StageAcquire, fmt.Sprintf("Audio extraction completed (%sMB)", megabytes(len(audio))))
	m.logger.Info(ctx, "Extracted %d bytes of audio from %d byte upload", len(audio), len(data))

	return audio, nil
}
