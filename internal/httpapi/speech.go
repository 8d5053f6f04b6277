package httpapi

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type speechRequest struct {
	Text string `json:"text"`
}

// textToSpeech returns the spoken rendition of text as MP3.
func (h *handler) textToSpeech(c *fiber.Ctx) error {
	var req speechRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "Text is required")
	}

	audio, err := h.speech.Synthesize(c.UserContext(), req.Text)
	if err != nil {
		h.logger.Error(context.Background(), "Text-to-speech failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}
