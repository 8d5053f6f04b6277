package transcriber

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/textchunk"
)

// Chunk is one fixed-length slice of the audio, identified by its index.
type Chunk struct {
	Index int
	Start float64
	End   float64
	Audio []byte
	Text  string
}

// Plan partitions duration seconds into ceil(duration/size) chunks; the last
// one is truncated to what remains.
func Plan(duration, size float64) []Chunk {
	if duration <= 0 || size <= 0 {
		return nil
	}

	n := int(math.Ceil(duration / size))
	chunks := make([]Chunk, n)
	for i := range chunks {
		start := float64(i) * size
		chunks[i] = Chunk{
			Index: i,
			Start: start,
			End:   math.Min(start+size, duration),
		}
	}
	return chunks
}

// Assemble joins the non-empty chunk texts in index order.
func Assemble(chunks []Chunk) string {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Text != "" {
			texts = append(texts, c.Text)
		}
	}
	return strings.Join(texts, " ")
}

func (t *implTranscriber) streaming(ctx context.Context, audio []byte, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageTranscribe, fmt.Sprintf("Streaming mode: processing %sMB audio with real-time transcription", megabytes(len(audio))))

	src, err := t.tools.Open(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			t.logger.Warn(ctx, "Failed to cleanup staged audio: %v", err)
		}
	}()

	duration, err := src.Duration(ctx)
	if err != nil {
		return "", fmt.Errorf("probe duration: %w", err)
	}

	chunks := Plan(duration, t.opts.ChunkSeconds)
	total := len(chunks)
	secs := int(math.Round(duration))
	rep.Status(progress.StageTranscribe, fmt.Sprintf("Audio duration: %dm %ds. Creating %d streaming chunks...", secs/60, secs%60, total))

	for i := range chunks {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		c := &chunks[i]
		if !t.transcribeChunk(ctx, src, c, total, rep) {
			continue
		}
		rep.Transcript(Assemble(chunks[:i+1]))
	}

	transcript := Assemble(chunks)
	rep.Status(progress.StageTranscribe, fmt.Sprintf("Streaming transcription completed! Total: %d words from %d chunks",
		len(strings.Fields(transcript)), total))
	rep.Transcript(transcript)

	return transcript, nil
}

// transcribeChunk fills c.Text and reports whether it produced any text.
// Failures leave the text empty.
func (t *implTranscriber) transcribeChunk(ctx context.Context, src media.Source, c *Chunk, total int, rep progress.Reporter) bool {
	n := c.Index + 1

	rep.Status(progress.StageTranscribe, fmt.Sprintf("Creating chunk %d/%d (%.0fs-%.0fs)...", n, total, c.Start, c.End))
	audio, err := src.Slice(ctx, c.Start, c.End-c.Start)
	if err != nil {
		t.logger.Warn(ctx, "Chunk %d/%d slice failed: %v", n, total, err)
		rep.Status(progress.StageTranscribe, fmt.Sprintf("Chunk %d/%d could not be extracted - continuing", n, total))
		return false
	}
	c.Audio = audio

	rep.Status(progress.StageTranscribe, fmt.Sprintf("Transcribing chunk %d/%d...", n, total))
	text, err := t.stt.Transcribe(ctx, fmt.Sprintf("chunk_%d.wav", c.Index), c.Audio)
	c.Audio = nil
	if err != nil {
		t.logger.Warn(ctx, "Chunk %d/%d transcription failed: %v", n, total, err)
		rep.Status(progress.StageTranscribe, fmt.Sprintf("Chunk %d/%d failed - continuing with next chunk", n, total))
		return false
	}

	c.Text = strings.TrimSpace(text)
	if c.Text == "" {
		rep.Status(progress.StageTranscribe, fmt.Sprintf("Chunk %d/%d completed (no speech)", n, total))
		return false
	}

	preview := textchunk.Truncate(c.Text, 50)
	if preview != c.Text {
		preview += "..."
	}
	rep.Status(progress.StageTranscribe, fmt.Sprintf("Chunk %d/%d completed (%d words) - %q", n, total, len(strings.Fields(c.Text)), preview))
	return true
}
