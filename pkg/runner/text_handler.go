package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/tasklist/pkg/view"
)

// DefaultPrompt is printed before every command line.
const DefaultPrompt = "> "

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Prompt   string

	lines     chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithPrompt replaces DefaultPrompt. An empty prompt prints nothing.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.lines = make(chan inputResult)
		go h.pump()
	})
}

// pump moves blocking reads off the caller's goroutine so Input can honor ctx.
func (h *TextHandler) pump() {
	defer close(h.lines)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.lines <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.lines <- inputResult{err: err}
			}
			return
		}
	}
}

func (h *TextHandler) readLine(ctx context.Context) (string, error) {
	h.initPump()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}

// Input prompts for and returns the next sanitized line.
// Lines rejected by SanitizeInput are reported and the prompt repeats.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	for {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		fmt.Fprint(h.Writer, h.Prompt)

		text, err := h.readLine(ctx)
		if err != nil {
			return "", err
		}
		clean, err := SanitizeInput(text)
		if err != nil {
			fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
			continue
		}
		return clean, nil
	}
}

// Confirm asks a yes/no question. Anything but y or yes, including end of input,
// counts as no.
func (h *TextHandler) Confirm(ctx context.Context, prompt string) bool {
	fmt.Fprintf(h.Writer, "%s [y/N]: ", prompt)
	answer, err := h.readLine(ctx)
	if err != nil {
		fmt.Fprintln(h.Writer)
		return false
	}
	return isYes(answer)
}

// Notify prints a notice.
func (h *TextHandler) Notify(msg string) {
	fmt.Fprintf(h.Writer, "! %s\n", msg)
}

// Render prints the list, through the Renderer when one is configured.
func (h *TextHandler) Render(ctx context.Context, m view.Model) error {
	if h.Renderer != nil {
		if out, err := h.Renderer(view.RenderMarkdown(m)); err == nil {
			_, err = fmt.Fprintln(h.Writer, strings.TrimSpace(out))
			return err
		}
	}
	return view.RenderText(h.Writer, m)
}

// SystemOutput prints a meta-message.
func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintln(h.Writer, msg)
	return err
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "true":
		return true
	}
	return false
}
