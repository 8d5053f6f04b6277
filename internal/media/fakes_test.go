package media

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/kkdai/youtube/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

type call struct {
	name string
	args []string
}

// fakeExecutor writes outputs to the last ffmpeg argument and answers ffprobe.
type fakeExecutor struct {
	mu          sync.Mutex
	calls       []call
	duration    string
	probeErr    error
	output      []byte
	ffmpegErr   error
	progress    []string
	sawInputs   []bool
	partialFail bool
}

func (f *fakeExecutor) record(name string, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, args: append([]string(nil), args...)})
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.record(name, args)
	if name == "ffprobe" {
		if f.probeErr != nil {
			return "", f.probeErr
		}
		return f.duration + "\n", nil
	}
	return "", f.runFFmpeg(args)
}

func (f *fakeExecutor) ExecuteStream(ctx context.Context, onLine func(string), name string, args ...string) error {
	f.record(name, args)
	for _, l := range f.progress {
		onLine(l)
	}
	return f.runFFmpeg(args)
}

func (f *fakeExecutor) runFFmpeg(args []string) error {
	for i, a := range args {
		if a == "-i" && i+1 < len(args) {
			_, err := os.Stat(args[i+1])
			f.sawInputs = append(f.sawInputs, err == nil)
		}
	}
	out := args[len(args)-1]
	if f.ffmpegErr != nil {
		if f.partialFail {
			os.WriteFile(out, []byte("partial"), 0644)
		}
		return f.ffmpegErr
	}
	return os.WriteFile(out, f.output, 0644)
}

func (f *fakeExecutor) ffmpegCalls() []call {
	var out []call
	for _, c := range f.calls {
		if c.name == "ffmpeg" {
			out = append(out, c)
		}
	}
	return out
}

type recorder struct {
	statuses []progress.Status
}

func (r *recorder) Status(step progress.Stage, message string) {
	r.statuses = append(r.statuses, progress.Status{Step: step, Message: message})
}

func (r *recorder) Transcript(string) {}

func (r *recorder) messages() []string {
	var out []string
	for _, s := range r.statuses {
		out = append(out, s.Message)
	}
	return out
}

func newTestMedia(t *testing.T, exec *fakeExecutor) *Media {
	t.Helper()
	return &Media{
		ffmpeg:   "ffmpeg",
		ffprobe:  "ffprobe",
		tempDir:  t.TempDir(),
		executor: exec,
		logger:   logger.Discard(),
	}
}

func assertTempDirEmpty(t *testing.T, m *Media) {
	t.Helper()
	entries, err := os.ReadDir(m.tempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("temp files left behind: %v", names)
	}
}

func containsSeq(args []string, seq ...string) bool {
	return strings.Contains(" "+strings.Join(args, " ")+" ", " "+strings.Join(seq, " ")+" ")
}

type fakeYouTube struct {
	video     *youtube.Video
	infoErr   error
	streamErr error
	body      []byte
	gotFormat *youtube.Format
}

func (f *fakeYouTube) GetVideoContext(ctx context.Context, url string) (*youtube.Video, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.video, nil
}

func (f *fakeYouTube) GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error) {
	f.gotFormat = format
	if f.streamErr != nil {
		return nil, 0, f.streamErr
	}
	return io.NopCloser(strings.NewReader(string(f.body))), int64(len(f.body)), nil
}

var errStatus403 = errors.New("unexpected status code: 403")
