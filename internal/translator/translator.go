package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/textchunk"
)

const (
	temperature     = 0.1
	chunkMaxTokens  = 1500
	singleMaxTokens = 2000
)

func systemPrompt(target Language) string {
	return fmt.Sprintf("You are a professional translator. Translate the following text to %s. Maintain the original meaning and tone. Only return the translated text, no additional comments.", target.Name())
}

func (t *implTranslator) TranslateIfNeeded(ctx context.Context, text string, target Language, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageTranslate, fmt.Sprintf("Analyzing transcript language (%d words, %d characters)...",
		len(strings.Fields(text)), textchunk.Len(text)))

	detected := Detect(text)
	rep.Status(progress.StageTranslate, fmt.Sprintf("Detected language: %s. Target recap language: %s", detected.Name(), target.Name()))

	if detected == target {
		rep.Status(progress.StageTranslate, fmt.Sprintf("No translation needed - transcript and recap are both in %s", target.Name()))
		return text, nil
	}

	rep.Status(progress.StageTranslate, fmt.Sprintf("Translation needed: %s -> %s. Starting translation...", detected.Name(), target.Name()))
	return t.translate(ctx, text, target, rep)
}

func (t *implTranslator) translate(ctx context.Context, text string, target Language, rep progress.Reporter) (string, error) {
	if textchunk.Len(text) <= textchunk.DefaultMaxChars {
		rep.Status(progress.StageTranslate, fmt.Sprintf("Translating to %s...", target.Name()))

		translated, err := t.call(ctx, text, target, singleMaxTokens)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			t.logger.Warn(ctx, "Translation failed, keeping original text: %v", err)
			rep.Status(progress.StageTranslate, "Translation failed - keeping original text")
			return text, nil
		}

		rep.Status(progress.StageTranslate, fmt.Sprintf("Translation to %s completed", target.Name()))
		return translated, nil
	}

	chunks := textchunk.Split(text, textchunk.DefaultMaxChars)
	rep.Status(progress.StageTranslate, fmt.Sprintf("Translating %d text segments to %s...", len(chunks), target.Name()))

	out := make([]string, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		rep.Status(progress.StageTranslate, fmt.Sprintf("Translating segment %d/%d to %s...", i+1, len(chunks), target.Name()))

		translated, err := t.call(ctx, chunk, target, chunkMaxTokens)
		if err != nil {
			t.logger.Warn(ctx, "Segment %d/%d translation failed, keeping original: %v", i+1, len(chunks), err)
			out[i] = chunk
			continue
		}
		out[i] = translated
	}

	rep.Status(progress.StageTranslate, fmt.Sprintf("Translation to %s completed", target.Name()))
	return strings.Join(out, textchunk.Separator), nil
}

func (t *implTranslator) call(ctx context.Context, text string, target Language, maxTokens int) (string, error) {
	return t.completer.Complete(ctx, llm.Request{
		System:      systemPrompt(target),
		User:        text,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}
