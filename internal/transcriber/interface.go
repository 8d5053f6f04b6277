package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// Transcriber converts a whole audio buffer into text, choosing how to send
// it to the speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, rep progress.Reporter) (string, error)
}
