package progress

import "encoding/json"

// Stage labels the pipeline step a status event belongs to.
type Stage int

const (
	StageAcquire    Stage = 1
	StageCompress   Stage = 2
	StageTranscribe Stage = 3
	StageTranslate  Stage = 4
	StageSummarize  Stage = 5
)

// Status is a human-readable progress update for one stage.
type Status struct {
	Step    Stage  `json:"step"`
	Message string `json:"message"`
	IsError bool   `json:"isError,omitempty"`
}

// Event is one message on a job's stream. Exactly one field is set.
type Event struct {
	Status     *Status `json:"status,omitempty"`
	Transcript *string `json:"transcript,omitempty"`
	Summary    *string `json:"summary,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Kind names the variant carried by e.
func (e Event) Kind() string {
	switch {
	case e.Status != nil:
		return "status"
	case e.Transcript != nil:
		return "transcript"
	case e.Summary != nil:
		return "summary"
	case e.Error != "":
		return "error"
	default:
		return ""
	}
}

// SSE renders e as a server-sent events frame.
func (e Event) SSE() ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}

func StatusEvent(step Stage, message string) Event {
	return Event{Status: &Status{Step: step, Message: message}}
}

func TranscriptEvent(text string) Event {
	return Event{Transcript: &text}
}

func SummaryEvent(text string) Event {
	return Event{Summary: &text}
}

func ErrorEvent(message string) Event {
	return Event{Error: message}
}
