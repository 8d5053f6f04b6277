package processor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// ErrNoSource is returned for a job with neither URL nor file.
var ErrNoSource = errors.New("No video source provided")

// ErrNoSpeech is returned when transcription yields no text at all.
var ErrNoSpeech = errors.New("No speech could be transcribed from the audio")

// Run orchestrates the pipeline for one job
func (p *implProcessor) Run(ctx context.Context, job *Job) (err error) {
	ctx = logger.WithJobID(ctx, job.ID)
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "Pipeline panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("Unexpected error: %v", r)
		}
		if err != nil {
			p.logger.Error(ctx, "Job failed at step %d: %v", job.Stage(), err)
			job.fail(err)
			return
		}
		job.Events().Close()
	}()

	if !p.slots.tryAcquire() {
		job.Status(progress.StageAcquire, "Waiting for a free processing slot...")
		if err := p.slots.acquire(ctx); err != nil {
			return err
		}
	}
	defer p.slots.release()

	p.logger.Info(ctx, "Starting job (language=%s, url=%q, file=%q)", job.Language, job.Input.URL, job.Input.FileName)

	// Step 1: Acquire audio
	audio, err := p.acquire(ctx, job)
	if err != nil {
		return err
	}

	// Step 2-3: Transcribe, compressing or chunking as needed
	transcript, err := p.transcriber.Transcribe(ctx, audio, job)
	if err != nil {
		return fmt.Errorf("Failed to transcribe audio: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return ErrNoSpeech
	}

	// Step 4: Translate to the recap language if needed
	transcript, err = p.translator.TranslateIfNeeded(ctx, transcript, job.Language, job)
	if err != nil {
		return err
	}
	job.Transcript(transcript)
	job.Status(progress.StageTranslate, "Transcript completed! Now generating summary...")

	// Step 5: Summarize
	summary, err := p.summarizer.Summarize(ctx, transcript, job.Language, job)
	if err != nil {
		return err
	}
	job.setSummary(summary)

	p.logger.Info(ctx, "Job completed in %s (%d transcript chars, %d summary chars)",
		time.Since(startTime).Round(time.Millisecond), len(transcript), len(summary))
	return nil
}

func (p *implProcessor) acquire(ctx context.Context, job *Job) ([]byte, error) {
	switch {
	case len(job.Input.File) > 0:
		return p.acquirer.ExtractUpload(ctx, job.Input.File, job)
	case job.Input.URL != "":
		return p.acquirer.FetchURL(ctx, job.Input.URL, job)
	default:
		return nil, ErrNoSource
	}
}
