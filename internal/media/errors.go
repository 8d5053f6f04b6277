package media

import (
	"errors"
	"strings"
)

const blockedMessage = "YouTube blocked the request (403). This video may be restricted or age-gated. Try: 1) A different video, 2) Upload the MP4 file directly instead."

var (
	ErrInvalidURL = errors.New("Invalid YouTube URL")
	ErrBlocked    = errors.New(blockedMessage)
	ErrNoAudio    = errors.New("no audio-only format available")
)

// AcquireError carries the user-facing message for a failed download.
type AcquireError struct {
	Blocked bool
	Err     error
}

func (e *AcquireError) Error() string {
	if e.Blocked {
		return blockedMessage
	}
	return "Failed to download audio: " + e.Err.Error()
}

func (e *AcquireError) Unwrap() error { return e.Err }

func (e *AcquireError) Is(target error) bool {
	return target == ErrBlocked && e.Blocked
}

func newAcquireError(err error) *AcquireError {
	return &AcquireError{Blocked: strings.Contains(err.Error(), "403"), Err: err}
}
