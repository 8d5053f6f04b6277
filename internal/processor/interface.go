package processor

import "context"

// Processor runs the media-to-recap pipeline.
type Processor interface {
	// Run executes job to completion. The job's event stream always ends with
	// either a summary or an error event; the returned error mirrors the latter.
	Run(ctx context.Context, job *Job) error
	// ProcessFile runs a video file from disk and writes the recap to the
	// output folder.
	ProcessFile(ctx context.Context, videoPath string) error
}
