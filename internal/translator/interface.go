package translator

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// Translator renders a transcript in the requested language when it is not
// already in it.
type Translator interface {
	TranslateIfNeeded(ctx context.Context, text string, target Language, rep progress.Reporter) (string, error)
}
