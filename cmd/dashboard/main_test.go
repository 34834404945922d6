package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"campaigndash/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func TestNewServerWiresRoutes(t *testing.T) {
	cfg := &config.Config{
		APIBaseURL:          "http://127.0.0.1:1",
		Port:                "9090",
		Locale:              "en-IN",
		TimeZone:            "UTC",
		CORSOrigins:         []string{"*"},
		NotificationHistory: 5,
	}
	server, controller, err := newServer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer controller.Close()

	assert.Equal(t, ":9090", server.Addr)

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewServerRejectsUnknownZone(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://127.0.0.1:1", TimeZone: "Mars/Olympus"}
	_, _, err := newServer(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestInitialLoadEndsWithController(t *testing.T) {
	requested := make(chan struct{}, 2)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested <- struct{}{}
		<-r.Context().Done()
	}))
	defer backend.Close()

	cfg := &config.Config{
		APIBaseURL:          backend.URL,
		Port:                "0",
		TimeZone:            "UTC",
		CORSOrigins:         []string{"*"},
		NotificationHistory: 5,
	}
	_, controller, err := newServer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	controller.Refresh()
	<-requested

	done := make(chan struct{})
	go func() {
		controller.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the initial load")
	}
	assert.Empty(t, controller.Store().State().Error)
}
