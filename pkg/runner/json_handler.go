package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tasklist/pkg/view"
)

// Event types written by JSONHandler.
const (
	EventView    = "view"
	EventNotice  = "notice"
	EventConfirm = "confirm"
	EventSystem  = "system"
)

// Event is one JSON line of output.
type Event struct {
	Type    string      `json:"type"`
	View    *view.Model `json:"view,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONHandler implements IOHandler for JSON-Lines communication.
// Commands are read as plain lines or JSON strings; everything written is an Event.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) emit(e Event) error {
	return h.Encoder.Encode(e)
}

// readLine returns one line, unquoting it when it is a JSON string.
func (h *JSONHandler) readLine() (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	return text, nil
}

// Input returns the next sanitized command line.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		text, err := h.readLine()
		if err != nil {
			return "", err
		}
		clean, err := SanitizeInput(text)
		if err != nil {
			if err := h.emit(Event{Type: EventSystem, Message: err.Error()}); err != nil {
				return "", err
			}
			continue
		}
		return clean, nil
	}
}

// Confirm emits a confirm event and reads the answer line: true, "y" or "yes".
func (h *JSONHandler) Confirm(ctx context.Context, prompt string) bool {
	if err := h.emit(Event{Type: EventConfirm, Message: prompt}); err != nil {
		return false
	}
	answer, err := h.readLine()
	if err != nil {
		return false
	}
	return isYes(answer)
}

// Notify emits a notice event.
func (h *JSONHandler) Notify(msg string) {
	_ = h.emit(Event{Type: EventNotice, Message: msg})
}

// Render emits the model as a view event.
func (h *JSONHandler) Render(ctx context.Context, m view.Model) error {
	return h.emit(Event{Type: EventView, View: &m})
}

// SystemOutput emits a system event.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.emit(Event{Type: EventSystem, Message: msg})
}
