package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
)

type fakeAcquirer struct {
	audio []byte
	err   error
	panic bool
}

func (f *fakeAcquirer) FetchURL(ctx context.Context, url string, rep progress.Reporter) ([]byte, error) {
	rep.Status(progress.StageAcquire, "Fetching video information...")
	if f.panic {
		panic("boom")
	}
	return f.audio, f.err
}

func (f *fakeAcquirer) ExtractUpload(ctx context.Context, data []byte, rep progress.Reporter) ([]byte, error) {
	rep.Status(progress.StageAcquire, "Extracting audio from video...")
	return f.audio, f.err
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageTranscribe, "Transcribing audio...")
	return f.text, f.err
}

type passthroughTranslator struct{}

func (passthroughTranslator) TranslateIfNeeded(ctx context.Context, text string, target translator.Language, rep progress.Reporter) (string, error) {
	return text, nil
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string, lang translator.Language, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageSummarize, "Generating summary...")
	return f.summary, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Performance.MaxConcurrent = 1
	cfg.Pipeline.RecapLanguage = "en"
	cfg.Paths.Output = filepath.Join(dir, "output")
	cfg.Paths.Archived = filepath.Join(dir, "archived")
	return cfg
}

// runJob runs job and returns every event it produced.
func runJob(t *testing.T, p Processor, job *Job) ([]progress.Event, error) {
	t.Helper()
	var (
		events []progress.Event
		wg     sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = job.Events().Drain(context.Background(), func(ev progress.Event) error {
			events = append(events, ev)
			return nil
		})
	}()
	err := p.Run(context.Background(), job)
	wg.Wait()
	return events, err
}

func TestRunEmitsOrderedEventsEndingInSummary(t *testing.T) {
	p := New(testConfig(t),
		&fakeAcquirer{audio: []byte("audio")},
		&fakeTranscriber{text: "hello world."},
		passthroughTranslator{},
		&fakeSummarizer{summary: "- point"},
		logger.Discard(),
	)

	job := NewJob(Input{URL: "https://youtu.be/dQw4w9WgXcQ"}, translator.English)
	events, err := runJob(t, p, job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(events) == 0 {
		t.Fatal("no events emitted")
	}
	last := events[len(events)-1]
	if last.Summary == nil || *last.Summary != "- point" {
		t.Fatalf("last event = %+v, want summary", last)
	}

	var lastStep progress.Stage
	sawTranscript := false
	for _, ev := range events {
		if ev.Status != nil {
			if ev.Status.Step < lastStep {
				t.Errorf("step went backwards: %d after %d", ev.Status.Step, lastStep)
			}
			lastStep = ev.Status.Step
		}
		if ev.Transcript != nil {
			sawTranscript = true
			if *ev.Transcript != "hello world." {
				t.Errorf("transcript = %q", *ev.Transcript)
			}
		}
	}
	if !sawTranscript {
		t.Error("no transcript event")
	}
	if job.Summary() != "- point" || job.TranscriptText() != "hello world." {
		t.Errorf("job state = %q / %q", job.TranscriptText(), job.Summary())
	}
}

func TestRunFailuresEndWithErrorEvent(t *testing.T) {
	tests := []struct {
		name     string
		acquirer *fakeAcquirer
		trans    *fakeTranscriber
		summary  *fakeSummarizer
		wantStep progress.Stage
		wantMsg  string
	}{
		{
			name:     "acquisition blocked",
			acquirer: &fakeAcquirer{err: &media.AcquireError{Blocked: true, Err: errors.New("403")}},
			trans:    &fakeTranscriber{text: "x"},
			summary:  &fakeSummarizer{summary: "s"},
			wantStep: progress.StageAcquire,
			wantMsg:  "YouTube blocked the request (403)",
		},
		{
			name:     "transcription failure",
			acquirer: &fakeAcquirer{audio: []byte("a")},
			trans:    &fakeTranscriber{err: errors.New("service down")},
			summary:  &fakeSummarizer{summary: "s"},
			wantStep: progress.StageTranscribe,
			wantMsg:  "Failed to transcribe audio: service down",
		},
		{
			name:     "empty transcript",
			acquirer: &fakeAcquirer{audio: []byte("a")},
			trans:    &fakeTranscriber{text: "   "},
			summary:  &fakeSummarizer{summary: "s"},
			wantStep: progress.StageTranscribe,
			wantMsg:  ErrNoSpeech.Error(),
		},
		{
			name:     "summary failure",
			acquirer: &fakeAcquirer{audio: []byte("a")},
			trans:    &fakeTranscriber{text: "hello."},
			summary:  &fakeSummarizer{err: errors.New("Failed to generate summary: quota")},
			wantStep: progress.StageSummarize,
			wantMsg:  "Failed to generate summary: quota",
		},
		{
			name:     "panic",
			acquirer: &fakeAcquirer{panic: true},
			trans:    &fakeTranscriber{text: "x"},
			summary:  &fakeSummarizer{summary: "s"},
			wantStep: progress.StageAcquire,
			wantMsg:  "Unexpected error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(testConfig(t), tt.acquirer, tt.trans, passthroughTranslator{}, tt.summary, logger.Discard())
			job := NewJob(Input{URL: "https://youtu.be/dQw4w9WgXcQ"}, translator.English)

			events, err := runJob(t, p, job)
			if err == nil {
				t.Fatal("Run() error = nil, want failure")
			}
			if len(events) < 2 {
				t.Fatalf("got %d events, want at least 2", len(events))
			}

			status := events[len(events)-2].Status
			if status == nil || !status.IsError || status.Step != tt.wantStep {
				t.Errorf("error status = %+v, want step %d with isError", status, tt.wantStep)
			}

			last := events[len(events)-1]
			if !strings.Contains(last.Error, tt.wantMsg) {
				t.Errorf("error event = %q, want %q", last.Error, tt.wantMsg)
			}
			for _, ev := range events {
				if ev.Summary != nil {
					t.Error("summary emitted on failure")
				}
			}
		})
	}
}

func TestRunWithoutSource(t *testing.T) {
	p := New(testConfig(t), &fakeAcquirer{}, &fakeTranscriber{}, passthroughTranslator{}, &fakeSummarizer{}, logger.Discard())
	_, err := runJob(t, p, NewJob(Input{}, translator.English))
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Run() error = %v, want ErrNoSource", err)
	}
}

type blockingAcquirer struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingAcquirer) FetchURL(ctx context.Context, url string, rep progress.Reporter) ([]byte, error) {
	b.started <- struct{}{}
	<-b.release
	return []byte("a"), nil
}

func (b *blockingAcquirer) ExtractUpload(ctx context.Context, data []byte, rep progress.Reporter) ([]byte, error) {
	return b.FetchURL(ctx, "", rep)
}

func TestRunWaitsForFreeSlot(t *testing.T) {
	acq := &blockingAcquirer{started: make(chan struct{}, 2), release: make(chan struct{})}
	p := New(testConfig(t), acq, &fakeTranscriber{text: "hi."}, passthroughTranslator{}, &fakeSummarizer{summary: "s"}, logger.Discard())

	first := NewJob(Input{URL: "u"}, translator.English)
	firstDone := make(chan error, 1)
	go func() {
		_, err := runJob(t, p, first)
		firstDone <- err
	}()
	<-acq.started

	second := NewJob(Input{URL: "u"}, translator.English)
	secondDone := make(chan []progress.Event, 1)
	go func() {
		events, _ := runJob(t, p, second)
		secondDone <- events
	}()

	// Let the second job reach the semaphore before freeing the first.
	time.Sleep(50 * time.Millisecond)
	close(acq.release)

	if err := <-firstDone; err != nil {
		t.Fatalf("first job error = %v", err)
	}
	events := <-secondDone
	if len(events) == 0 || events[0].Status == nil || events[0].Status.Message != "Waiting for a free processing slot..." {
		t.Errorf("first event of queued job = %+v", events)
	}
}

func TestRunCancelledWhileWaiting(t *testing.T) {
	acq := &blockingAcquirer{started: make(chan struct{}, 1), release: make(chan struct{})}
	p := New(testConfig(t), acq, &fakeTranscriber{text: "hi."}, passthroughTranslator{}, &fakeSummarizer{summary: "s"}, logger.Discard())

	go func() { _, _ = runJob(t, p, NewJob(Input{URL: "u"}, translator.English)) }()
	<-acq.started
	defer close(acq.release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := NewJob(Input{URL: "u"}, translator.English)
	go func() { _ = job.Events().Drain(context.Background(), func(progress.Event) error { return nil }) }()
	if err := p.Run(ctx, job); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

type scriptedCompleter struct {
	mu    sync.Mutex
	calls int
}

func (s *scriptedCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if strings.Contains(req.System, "translat") {
		return "TRANSLATED", nil
	}
	return "- summary point", nil
}

type fakeSTT struct{}

func (fakeSTT) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	return "This is a short English clip.", nil
}

type smallToolkit struct{}

func (smallToolkit) Compress(ctx context.Context, audio []byte, rep progress.Reporter) ([]byte, error) {
	return audio, nil
}

func (smallToolkit) Open(ctx context.Context, audio []byte) (media.Source, error) {
	return nil, fmt.Errorf("streaming not expected")
}

func TestRunShortEnglishClipEndToEnd(t *testing.T) {
	log := logger.Discard()
	completer := &scriptedCompleter{}
	p := New(testConfig(t),
		&fakeAcquirer{audio: make([]byte, 1000)},
		transcriber.New(transcriber.DefaultOptions(), smallToolkit{}, fakeSTT{}, log),
		translator.New(completer, log),
		summarizer.New(completer, log),
		log,
	)

	events, err := runJob(t, p, NewJob(Input{URL: "https://youtu.be/dQw4w9WgXcQ"}, translator.English))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var transcript, summary string
	for _, ev := range events {
		if ev.Transcript != nil {
			transcript = *ev.Transcript
		}
		if ev.Summary != nil {
			summary = *ev.Summary
		}
	}
	if transcript != "This is a short English clip." {
		t.Errorf("transcript = %q, want untranslated text", transcript)
	}
	if summary != "- summary point" {
		t.Errorf("summary = %q", summary)
	}
	if completer.calls != 1 {
		t.Errorf("completer calls = %d, want 1 (summary only)", completer.calls)
	}
}

type chunkSource struct {
	duration float64
}

func (c chunkSource) Duration(ctx context.Context) (float64, error) { return c.duration, nil }

func (c chunkSource) Slice(ctx context.Context, start, length float64) ([]byte, error) {
	return []byte(fmt.Sprintf("%.0f", start)), nil
}

func (c chunkSource) Close() error { return nil }

type chunkToolkit struct {
	duration float64
}

func (c chunkToolkit) Compress(ctx context.Context, audio []byte, rep progress.Reporter) ([]byte, error) {
	return nil, fmt.Errorf("compression not expected")
}

func (c chunkToolkit) Open(ctx context.Context, audio []byte) (media.Source, error) {
	return chunkSource{duration: c.duration}, nil
}

// middleChunkFails transcribes every chunk except the second one.
type middleChunkFails struct{}

func (middleChunkFails) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	if filename == "chunk_1.wav" {
		return "", errors.New("service unavailable")
	}
	return "Words starting at " + string(audio) + " seconds.", nil
}

func TestRunCompletesWhenOneChunkFails(t *testing.T) {
	log := logger.Discard()
	completer := &scriptedCompleter{}
	opts := transcriber.DefaultOptions()
	opts.BytesPerSecond = 1

	p := New(testConfig(t),
		&fakeAcquirer{audio: make([]byte, 120)},
		transcriber.New(opts, chunkToolkit{duration: 90}, middleChunkFails{}, log),
		translator.New(completer, log),
		summarizer.New(completer, log),
		log,
	)

	job := NewJob(Input{URL: "https://youtu.be/dQw4w9WgXcQ"}, translator.English)
	events, err := runJob(t, p, job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, ev := range events {
		if ev.Error != "" || (ev.Status != nil && ev.Status.IsError) {
			t.Errorf("unexpected error event: %+v", ev)
		}
	}
	if last := events[len(events)-1]; last.Summary == nil || *last.Summary != "- summary point" {
		t.Errorf("last event = %+v, want summary", last)
	}

	want := "Words starting at 0 seconds. Words starting at 60 seconds."
	if got := job.TranscriptText(); got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
}

func TestProcessFileWritesRecapAndArchives(t *testing.T) {
	cfg := testConfig(t)
	input := filepath.Join(t.TempDir(), "lecture.mp4")
	if err := os.WriteFile(input, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	p := New(cfg, &fakeAcquirer{audio: []byte("a")}, &fakeTranscriber{text: "hello world."},
		passthroughTranslator{}, &fakeSummarizer{summary: "- point"}, logger.Discard())

	if err := p.ProcessFile(context.Background(), input); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	for _, name := range []string{"lecture.md", "lecture.docx"} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.Output, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "lecture.mp4")); err != nil {
		t.Errorf("source not archived: %v", err)
	}
	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Errorf("source still in input folder")
	}
}
