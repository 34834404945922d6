// Package sse reads and writes the text/event-stream wire format.
package sse

import (
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	gosse "github.com/tmaxmax/go-sse"
)

// DefaultEventType is the type of events that carry no "event:" field.
const DefaultEventType = "message"

const maxEventSize = 1 << 20

type Event struct {
	Type  string
	Data  string
	ID    string
	Retry time.Duration
}

// Read decodes the events of a stream. Events with no "event:" field get
// DefaultEventType and ID carries the last event id seen on the stream.
// Iteration ends at EOF or after yielding the first read error.
func Read(r io.Reader) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for evt, err := range gosse.Read(r, &gosse.ReadConfig{MaxEventSize: maxEventSize}) {
			if err != nil {
				yield(Event{}, err)
				return
			}
			out := Event{Type: evt.Type, Data: evt.Data, ID: evt.LastEventID}
			if out.Type == "" {
				out.Type = DefaultEventType
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

// Writer encodes events onto an HTTP response and flushes after each one.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter sets the event-stream headers on w. It fails when w cannot flush.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("sse: streaming unsupported by %T", w)
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &Writer{w: w, flusher: flusher}, nil
}

// Send writes one event. Multi-line data is split over several data fields.
func (w *Writer) Send(evt Event) error {
	var b strings.Builder
	if evt.ID != "" {
		fmt.Fprintf(&b, "id: %s\n", evt.ID)
	}
	if evt.Type != "" && evt.Type != DefaultEventType {
		fmt.Fprintf(&b, "event: %s\n", evt.Type)
	}
	if evt.Retry > 0 {
		fmt.Fprintf(&b, "retry: %d\n", evt.Retry.Milliseconds())
	}
	for _, line := range strings.Split(evt.Data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w.w, b.String()); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

// Comment writes a comment line, used as a keep-alive.
func (w *Writer) Comment(text string) error {
	if _, err := fmt.Fprintf(w.w, ": %s\n\n", text); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}
