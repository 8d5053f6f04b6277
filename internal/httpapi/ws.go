package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/progress"
)

// processVideoWS runs a URL job over a WebSocket. The first text frame is the
// request; every event follows as one JSON frame.
func (h *handler) processVideoWS(conn *websocket.Conn) {
	defer conn.Close()

	var req processRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(progress.ErrorEvent("Invalid request body"))
		return
	}

	job, err := jobFromRequest(req)
	if err != nil {
		var ie *inputError
		if !errors.As(err, &ie) {
			h.logger.Error(context.Background(), "WebSocket job setup failed: %v", err)
		}
		_ = conn.WriteJSON(progress.ErrorEvent(err.Error()))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithJobID(ctx, job.ID)

	// Any read error means the client went away. The reader must stop before
	// the handler returns: the conn goes back to a pool afterwards.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()
	defer func() {
		_ = conn.SetReadDeadline(time.Now())
		<-readerDone
	}()

	go func() {
		_ = h.proc.Run(ctx, job)
	}()

	if err := job.Events().Drain(ctx, func(ev progress.Event) error {
		return conn.WriteJSON(ev)
	}); err != nil {
		h.logger.Warn(ctx, "WebSocket stream ended early: %v", err)
		return
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
