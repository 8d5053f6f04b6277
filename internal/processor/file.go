package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/exporter"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
)

// ProcessFile runs a dropped video through the pipeline, writes the recap to
// the output folder and archives the source.
func (p *implProcessor) ProcessFile(ctx context.Context, videoPath string) error {
	filename := filepath.Base(videoPath)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", videoPath)
	p.logger.Info(ctx, "========================================")

	data, err := os.ReadFile(videoPath)
	if err != nil {
		return fmt.Errorf("read video: %w", err)
	}

	lang, ok := translator.ParseLanguage(p.cfg.Pipeline.RecapLanguage)
	if !ok {
		lang = translator.English
	}

	job := NewJob(Input{File: data, FileName: filename}, lang)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		p.logEvents(ctx, job)
	}()

	runErr := p.Run(ctx, job)
	<-drained
	if runErr != nil {
		return fmt.Errorf("process %s: %w", filename, runErr)
	}

	mdPath, docxPath, err := exporter.Write(p.cfg.Paths.Output, name, exporter.Recap{
		Title:      name,
		Language:   lang,
		Transcript: job.TranscriptText(),
		Summary:    job.Summary(),
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write recap: %w", err)
	}

	if err := p.moveToArchived(ctx, videoPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "[DONE] %s -> %s, %s", filename, mdPath, docxPath)
	return nil
}

// logEvents mirrors a job's status stream into the log.
func (p *implProcessor) logEvents(ctx context.Context, job *Job) {
	jobCtx := withJob(ctx, job)
	_ = job.Events().Drain(context.WithoutCancel(ctx), func(ev progress.Event) error {
		switch {
		case ev.Status != nil && ev.Status.IsError:
			p.logger.Error(jobCtx, "[step %d] %s", ev.Status.Step, ev.Status.Message)
		case ev.Status != nil:
			p.logger.Info(jobCtx, "[step %d] %s", ev.Status.Step, ev.Status.Message)
		case ev.Transcript != nil:
			p.logger.Debug(jobCtx, "Transcript updated: %d chars", len(*ev.Transcript))
		}
		return nil
	})
}

// moveToArchived moves the source video into the archived folder
func (p *implProcessor) moveToArchived(ctx context.Context, videoPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(videoPath))
	p.logger.Info(ctx, "Archiving: %s -> %s", videoPath, destPath)

	if err := os.Rename(videoPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
