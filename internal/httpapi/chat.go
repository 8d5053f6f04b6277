package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
)

const (
	chatTemperature    = 0.7
	chatMaxTokens      = 500
	chatTranscriptRune = 2000
	chatFallback       = "Sorry, I could not generate a response."
)

type chatRequest struct {
	Message    string `json:"message"`
	Context    string `json:"context"`
	Transcript string `json:"transcript"`
}

func chatSystemPrompt(summary, transcript string) string {
	if summary == "" {
		summary = "No summary available"
	}
	if transcript == "" {
		transcript = "No transcript available"
	} else {
		if utf8.RuneCountInString(transcript) > chatTranscriptRune {
			transcript = string([]rune(transcript)[:chatTranscriptRune])
		}
		transcript += "..."
	}

	return fmt.Sprintf(`You are an AI assistant helping users understand a YouTube video. You have access to the video's transcript and summary.

CONTEXT:
Summary: %s

Transcript: %s

Please answer the user's question based on this video content. Be helpful, accurate, and reference specific parts of the content when relevant. Keep responses concise but informative.`, summary, transcript)
}

// chat answers a question about a processed video.
func (h *handler) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "Message is required")
	}

	answer, err := h.completer.Complete(c.UserContext(), llm.Request{
		System:      chatSystemPrompt(req.Context, req.Transcript),
		User:        req.Message,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	switch {
	case errors.Is(err, llm.ErrEmptyCompletion) || (err == nil && strings.TrimSpace(answer) == ""):
		answer = chatFallback
	case err != nil:
		h.logger.Error(context.Background(), "Chat completion failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process chat message"})
	}

	return c.JSON(fiber.Map{"response": answer})
}
