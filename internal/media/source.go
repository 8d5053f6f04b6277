package media

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

type fileSource struct {
	m    *Media
	path string
}

// Open stages audio on disk so it can be probed and sliced.
func (m *Media) Open(ctx context.Context, audio []byte) (Source, error) {
	path, err := m.writeTemp("stream", ".audio", audio)
	if err != nil {
		return nil, err
	}
	return &fileSource{m: m, path: path}, nil
}

func (s *fileSource) Duration(ctx context.Context) (float64, error) {
	return s.m.probe(ctx, s.path)
}

// Slice cuts [start, start+length) into a 16kHz mono PCM WAV.
func (s *fileSource) Slice(ctx context.Context, start, length float64) ([]byte, error) {
	output := s.m.tempPath("chunk", ".wav")
	defer s.m.cleanupTempFile(ctx, output)

	args := []string{
		"-y",
		"-ss", strconv.FormatFloat(start, 'f', -1, 64),
		"-t", strconv.FormatFloat(length, 'f', -1, 64),
		"-i", s.path,
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		"-f", "wav",
		output,
	}
	if err := s.m.transcode(ctx, args, 0, nil); err != nil {
		return nil, fmt.Errorf("slice %.0fs-%.0fs: %w", start, start+length, err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("read chunk: %w", err)
	}
	return data, nil
}

func (s *fileSource) Close() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove staged audio: %w", err)
	}
	return nil
}
