package processor

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
)

// Input is the job source: a video URL or an uploaded file.
type Input struct {
	URL      string
	File     []byte
	FileName string
}

// Job is the state of one request. It is owned by the goroutine running it and
// reports every change through its event stream.
type Job struct {
	ID       string
	Input    Input
	Language translator.Language

	events *progress.Emitter

	mu         sync.Mutex
	stage      progress.Stage
	transcript string
	summary    string
}

func NewJob(input Input, lang translator.Language) *Job {
	return &Job{
		ID:       uuid.NewString(),
		Input:    input,
		Language: lang,
		events:   progress.NewEmitter(),
		stage:    progress.StageAcquire,
	}
}

// Events is the job's ordered event stream.
func (j *Job) Events() *progress.Emitter {
	return j.events
}

func (j *Job) Status(step progress.Stage, message string) {
	j.mu.Lock()
	j.stage = step
	j.mu.Unlock()
	j.events.Status(step, message)
}

func (j *Job) Transcript(text string) {
	j.mu.Lock()
	j.transcript = text
	j.mu.Unlock()
	j.events.Transcript(text)
}

func (j *Job) setSummary(text string) {
	j.mu.Lock()
	j.summary = text
	j.mu.Unlock()
	j.events.Summary(text)
}

func (j *Job) Stage() progress.Stage {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stage
}

func (j *Job) TranscriptText() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.transcript
}

func (j *Job) Summary() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.summary
}

// fail marks the current stage as failed and ends the stream with err.
func (j *Job) fail(err error) {
	step := j.Stage()
	_ = j.events.Emit(progress.Event{Status: &progress.Status{Step: step, Message: err.Error(), IsError: true}})
	j.events.Fail(err)
}

func withJob(ctx context.Context, job *Job) context.Context {
	return logger.WithJobID(ctx, job.ID)
}
