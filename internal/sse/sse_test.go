package sse

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, stream string) []Event {
	t.Helper()
	var events []Event
	for evt, err := range Read(strings.NewReader(stream)) {
		require.NoError(t, err)
		events = append(events, evt)
	}
	return events
}

func TestReadParsesEvents(t *testing.T) {
	stream := strings.Join([]string{
		": keep-alive",
		"",
		"data: {\"ctr\":\"3.2%\"}",
		"",
		"event: dashboard",
		"id: 7",
		"data: line one",
		"data: line two",
		"",
		"data:no-space",
		"",
	}, "\n")

	events := collect(t, stream)
	require.Len(t, events, 3)

	assert.Equal(t, Event{Type: DefaultEventType, Data: `{"ctr":"3.2%"}`}, events[0])
	assert.Equal(t, Event{Type: "dashboard", Data: "line one\nline two", ID: "7"}, events[1])
	assert.Equal(t, DefaultEventType, events[2].Type)
	assert.Equal(t, "no-space", events[2].Data)
}

func TestReadStopsOnError(t *testing.T) {
	boom := errors.New("connection reset")
	r := iotest.ErrReader(boom)

	var got []error
	for _, err := range Read(r) {
		got = append(got, err)
	}
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], boom)
}

func TestReadStopsWhenConsumerBreaks(t *testing.T) {
	stream := "data: one\n\ndata: two\n\n"
	var seen int
	for range Read(strings.NewReader(stream)) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestWriterRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)

	require.NoError(t, w.Send(Event{Type: "notification", Data: "a\nb", ID: "n1"}))
	require.NoError(t, w.Send(Event{Data: "plain"}))
	require.NoError(t, w.Comment("ping"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	events := collect(t, rec.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, Event{Type: "notification", Data: "a\nb", ID: "n1"}, events[0])
	assert.Equal(t, DefaultEventType, events[1].Type)
	assert.Equal(t, "plain", events[1].Data)
}
