package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/textchunk"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
)

const (
	temperature       = 0.3
	summaryMaxTokens  = 300
	segmentMaxTokens  = 150
	excerptChars      = 200
	segmentsSeparator = "\n\n"
)

// Summarize goes direct for short text and map-reduce for long text.
func (s *implSummarizer) Summarize(ctx context.Context, text string, lang translator.Language, rep progress.Reporter) (string, error) {
	if textchunk.Len(text) <= textchunk.DefaultMaxChars {
		return s.direct(ctx, text, lang, rep)
	}
	return s.mapReduce(ctx, text, lang, rep)
}

func (s *implSummarizer) direct(ctx context.Context, text string, lang translator.Language, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageSummarize, fmt.Sprintf("Generating AI summary in %s...", lang.Name()))

	p := promptsFor(lang).summary
	summary, err := s.call(ctx, p, text, summaryMaxTokens)
	if err != nil {
		return "", fmt.Errorf("Failed to generate summary: %w", err)
	}

	rep.Status(progress.StageSummarize, "Summary completed successfully!")
	return summary, nil
}

func (s *implSummarizer) mapReduce(ctx context.Context, text string, lang translator.Language, rep progress.Reporter) (string, error) {
	rep.Status(progress.StageSummarize, fmt.Sprintf("Preparing %s summary...", lang.Name()))

	set := promptsFor(lang)
	chunks := textchunk.Split(text, textchunk.DefaultMaxChars)
	rep.Status(progress.StageSummarize, fmt.Sprintf("Creating summaries for %d text segments...", len(chunks)))

	// Step 1: Map
	partials := make([]string, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		rep.Status(progress.StageSummarize, fmt.Sprintf("Summarizing segment %d/%d...", i+1, len(chunks)))

		summary, err := s.call(ctx, set.chunkSummary, chunk, segmentMaxTokens)
		if err != nil {
			s.logger.Warn(ctx, "Segment %d/%d summary failed, using excerpt: %v", i+1, len(chunks), err)
			summary = fmt.Sprintf("Segment %d: %s...", i+1, textchunk.Truncate(chunk, excerptChars))
		}
		partials[i] = summary
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Step 2: Reduce
	consolidated := strings.Join(partials, segmentsSeparator)
	rep.Status(progress.StageSummarize, "Creating final consolidated summary...")

	final, err := s.call(ctx, set.finalSummary, consolidated, summaryMaxTokens)
	if err != nil {
		s.logger.Warn(ctx, "Final summary failed, returning segment summaries: %v", err)
		rep.Status(progress.StageSummarize, "Final consolidation unavailable - returning segment summaries")
		return consolidated, nil
	}

	rep.Status(progress.StageSummarize, "Summary completed successfully!")
	return final, nil
}

func (s *implSummarizer) call(ctx context.Context, p promptPair, text string, maxTokens int) (string, error) {
	return s.completer.Complete(ctx, llm.Request{
		System:      p.system,
		User:        p.user(text),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}
