package media

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

var youtubeURLRe = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/(watch\?v=|embed/|v/)|youtu\.be/)[\w-]+`)

const reportEvery = 1024 * 1024

type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// ValidURL reports whether url looks like a YouTube watch, embed or short link.
func ValidURL(url string) bool {
	return youtubeURLRe.MatchString(strings.TrimSpace(url))
}

// FetchURL downloads the best audio-only stream of a YouTube video into memory.
func (m *Media) FetchURL(ctx context.Context, url string, rep progress.Reporter) ([]byte, error) {
	url = strings.TrimSpace(url)
	if !ValidURL(url) {
		return nil, ErrInvalidURL
	}

	rep.Status(progress.StageAcquire, "Connecting to YouTube...")
	rep.Status(progress.StageAcquire, "Fetching video information...")

	video, err := m.youtube.GetVideoContext(ctx, url)
	if err != nil {
		m.logger.Error(ctx, "Fetch video info %s: %v", url, err)
		return nil, newAcquireError(err)
	}

	rep.Status(progress.StageAcquire, fmt.Sprintf("Found: \"%s\" (%d min)", video.Title, int(video.Duration.Minutes()+0.5)))

	format, err := bestAudio(video.Formats)
	if err != nil {
		return nil, newAcquireError(err)
	}

	rep.Status(progress.StageAcquire, "Starting audio download...")

	stream, size, err := m.youtube.GetStreamContext(ctx, video, format)
	if err != nil {
		m.logger.Error(ctx, "Open audio stream itag=%d: %v", format.ItagNo, err)
		return nil, newAcquireError(err)
	}
	defer stream.Close()

	data, err := readWithProgress(stream, size, func(n int) {
		rep.Status(progress.StageAcquire, fmt.Sprintf("Downloading audio... %sMB", megabytes(n)))
	})
	if err != nil {
		return nil, newAcquireError(err)
	}
	if len(data) == 0 {
		return nil, newAcquireError(fmt.Errorf("empty audio stream"))
	}

	rep.Status(progress.StageAcquire, fmt.Sprintf("Audio download completed (%sMB)", megabytes(len(data))))
	m.logger.Info(ctx, "Downloaded %q: %d bytes, itag=%d", video.Title, len(data), format.ItagNo)

	return data, nil
}

// bestAudio picks the audio-only format with the highest bitrate.
func bestAudio(formats youtube.FormatList) (*youtube.Format, error) {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	if best == nil {
		return nil, ErrNoAudio
	}
	return best, nil
}

func readWithProgress(r io.Reader, size int64, onMB func(n int)) ([]byte, error) {
	capacity := 0
	if size > 0 {
		capacity = int(size)
	}
	data := make([]byte, 0, capacity)
	buf := make([]byte, 32*1024)
	next := reportEvery

	for {
		n, err := r.Read(buf)
		data = append(data, buf[:n]...)
		if len(data) >= next {
			onMB(len(data))
			next = (len(data)/reportEvery + 1) * reportEvery
		}
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
