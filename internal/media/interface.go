package media

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// Acquirer produces raw audio from a video URL or an uploaded MP4.
type Acquirer interface {
	FetchURL(ctx context.Context, url string, rep progress.Reporter) ([]byte, error)
	ExtractUpload(ctx context.Context, data []byte, rep progress.Reporter) ([]byte, error)
}

// Toolkit holds the audio operations transcription strategies rely on.
type Toolkit interface {
	Compress(ctx context.Context, audio []byte, rep progress.Reporter) ([]byte, error)
	Open(ctx context.Context, audio []byte) (Source, error)
}

// Source is audio staged on disk for probing and slicing.
// Close removes the staged file.
type Source interface {
	Duration(ctx context.Context) (float64, error)
	Slice(ctx context.Context, start, length float64) ([]byte, error)
	Close() error
}
