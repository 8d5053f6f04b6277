package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
)

// Summarizer produces a short bulleted recap of a transcript in the
// requested language.
type Summarizer interface {
	Summarize(ctx context.Context, text string, lang translator.Language, rep progress.Reporter) (string, error)
}
