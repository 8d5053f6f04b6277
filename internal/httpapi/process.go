package httpapi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
	"github.com/nguyentantai21042004/recap-flow/internal/translator"
	"github.com/valyala/fasthttp"
)

type processRequest struct {
	URL           string `json:"url"`
	RecapLanguage string `json:"recapLanguage"`
}

// inputError is a validation failure answered with HTTP 400.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func recapLanguage(code string) translator.Language {
	if lang, ok := translator.ParseLanguage(code); ok {
		return lang
	}
	return translator.English
}

func jobFromRequest(req processRequest) (*processor.Job, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, &inputError{"YouTube URL is required"}
	}
	if !media.ValidURL(req.URL) {
		return nil, &inputError{media.ErrInvalidURL.Error()}
	}
	return processor.NewJob(processor.Input{URL: req.URL}, recapLanguage(req.RecapLanguage)), nil
}

// isMP4Upload accepts a part whose content type or file name says MP4.
func isMP4Upload(contentType, filename string) bool {
	return strings.Contains(contentType, "mp4") || strings.EqualFold(filepath.Ext(filename), ".mp4")
}

func jobFromUpload(c *fiber.Ctx) (*processor.Job, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, &inputError{"Video file is required"}
	}
	if !isMP4Upload(fh.Header.Get("Content-Type"), fh.Filename) {
		return nil, &inputError{"Only MP4 files are supported"}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, &inputError{"Video file is required"}
	}

	input := processor.Input{File: data, FileName: fh.Filename}
	return processor.NewJob(input, recapLanguage(c.FormValue("recapLanguage"))), nil
}

func (h *handler) parseJob(c *fiber.Ctx) (*processor.Job, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return jobFromUpload(c)
	}

	var req processRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, &inputError{"Invalid request body"}
	}
	return jobFromRequest(req)
}

// processVideo validates the request, starts the job and streams its events
// as server-sent events. A write failure means the client left; the job is
// cancelled.
func (h *handler) processVideo(c *fiber.Ctx) error {
	job, err := h.parseJob(c)
	if err != nil {
		var ie *inputError
		if errors.As(err, &ie) {
			return badRequest(c, ie.msg)
		}
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx = logger.WithJobID(ctx, job.ID)
	h.logger.Info(ctx, "Accepted job from %s", c.IP())

	go func() {
		_ = h.proc.Run(ctx, job)
	}()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		err := job.Events().Drain(ctx, func(ev progress.Event) error {
			frame, err := ev.SSE()
			if err != nil {
				return err
			}
			if _, err := w.Write(frame); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			h.logger.Warn(ctx, "Event stream ended early: %v", err)
		}
	}))
	return nil
}
