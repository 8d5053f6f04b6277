package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// tempPath returns a unique path under the temp directory.
func (m *Media) tempPath(prefix, ext string) string {
	return filepath.Join(m.tempDir, prefix+"-"+uuid.NewString()+ext)
}

func (m *Media) writeTemp(prefix, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(m.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	path := m.tempPath(prefix, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return path, nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (m *Media) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		}
		return
	}
	m.logger.Debug(ctx, "Cleaned up temp file: %s", path)
}

// probe returns the container duration in seconds.
func (m *Media) probe(ctx context.Context, path string) (float64, error) {
	out, err := m.executor.Execute(ctx, m.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return duration, nil
}

// transcode runs ffmpeg. When total is known, onPercent receives progress in
// 10% steps parsed from ffmpeg's -progress output.
func (m *Media) transcode(ctx context.Context, args []string, total float64, onPercent func(pct int)) error {
	if onPercent == nil || total <= 0 {
		if _, err := m.executor.Execute(ctx, m.ffmpeg, args...); err != nil {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return nil
	}

	full := append([]string{"-progress", "pipe:1", "-nostats"}, args...)
	last := 0
	err := m.executor.ExecuteStream(ctx, func(line string) {
		pct, ok := parseProgress(line, total)
		if !ok || pct < last+10 {
			return
		}
		last = pct - pct%10
		onPercent(last)
	}, m.ffmpeg, full...)
	if err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// parseProgress reads an out_time_us / out_time_ms line (both microseconds).
func parseProgress(line string, total float64) (int, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok || (key != "out_time_us" && key != "out_time_ms") {
		return 0, false
	}
	us, err := strconv.ParseFloat(value, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	pct := int(us / 1e6 / total * 100)
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

func megabytes(n int) string {
	return fmt.Sprintf("%.1f", float64(n)/1024/1024)
}
