package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campaigndash/internal/interfaces"
	"campaigndash/internal/models"
	"campaigndash/internal/sse"
)

// StreamDisconnectedMessage is reported when a live session ends on its own.
const StreamDisconnectedMessage = "Live insights stream disconnected"

// StreamManager owns the single live insights connection. Start replaces
// the current session; the replaced connection is closed and its reader has
// exited before the new one is opened.
type StreamManager struct {
	baseURL    string
	httpClient *http.Client
	sink       interfaces.StreamSink
	logger     *zap.Logger

	startMu sync.Mutex // serialises Start and Stop

	mu      sync.Mutex // guards current and every emit to sink
	current *streamSession
}

type streamSession struct {
	id     models.CampaignID
	state  models.StreamState
	cancel context.CancelFunc
	done   chan struct{}
}

var _ interfaces.StreamStarter = (*StreamManager)(nil)

func NewStreamManager(baseURL string, sink interfaces.StreamSink, logger *zap.Logger) *StreamManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamManager{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client timeout: the response body stays open for the whole session.
		httpClient: &http.Client{},
		sink:       sink,
		logger:     logger,
	}
}

func (m *StreamManager) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		m.httpClient = hc
	}
}

// Start opens a live session for id, closing any session that is still
// connecting or open.
func (m *StreamManager) Start(id models.CampaignID) {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	m.closeCurrent()

	ctx, cancel := context.WithCancel(context.Background())
	sess := &streamSession{
		id:     id,
		state:  models.StreamStateIdle,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m.mu.Lock()
	m.current = sess
	m.setStateLocked(sess, models.StreamStateConnecting)
	m.mu.Unlock()

	go m.run(ctx, sess)
}

// Stop closes the current session without reporting an error.
func (m *StreamManager) Stop() {
	m.startMu.Lock()
	defer m.startMu.Unlock()
	m.closeCurrent()
}

// State reports the state of the most recent session.
func (m *StreamManager) State() models.StreamState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.StreamStateIdle
	}
	return m.current.state
}

// CampaignID returns the campaign of the most recent session, if any.
func (m *StreamManager) CampaignID() models.CampaignID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.id
}

// closeCurrent must be called with startMu held.
func (m *StreamManager) closeCurrent() {
	m.mu.Lock()
	sess := m.current
	if sess == nil {
		m.mu.Unlock()
		return
	}
	if sess.state.Active() {
		m.setStateLocked(sess, models.StreamStateClosed)
	}
	// The session stays current until its reader exits, but it is closed, so
	// nothing more is emitted for it.
	m.mu.Unlock()

	sess.cancel()
	<-sess.done
}

func (m *StreamManager) run(ctx context.Context, sess *streamSession) {
	defer close(sess.done)
	defer sess.cancel()

	logger := m.logger.With(zap.String("campaign_id", sess.id.String()))

	body, err := m.open(ctx, sess.id)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("live insights stream failed to open", zap.Error(err))
		}
		m.fail(sess)
		return
	}
	defer body.Close()

	m.mu.Lock()
	if m.current == sess && sess.state == models.StreamStateConnecting {
		m.setStateLocked(sess, models.StreamStateOpen)
	}
	m.mu.Unlock()
	logger.Debug("live insights stream open")

	for evt, err := range sse.Read(body) {
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("live insights stream read failed", zap.Error(err))
			}
			break
		}
		if evt.Type != sse.DefaultEventType {
			continue
		}

		snapshot, err := decodeSnapshot(evt.Data)
		if err != nil {
			logger.Debug("dropping malformed live insights frame", zap.Error(err))
			continue
		}

		m.mu.Lock()
		if m.current == sess && sess.state == models.StreamStateOpen && m.sink != nil {
			m.sink.StreamSnapshot(sess.id, snapshot)
		}
		m.mu.Unlock()
	}
	m.fail(sess)
}

func (m *StreamManager) open(ctx context.Context, id models.CampaignID) (io.ReadCloser, error) {
	streamURL := m.baseURL + "/campaigns/" + url.PathEscape(id.String()) + "/insights/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("stream handshake: status=%d", resp.StatusCode)
	}
	return resp.Body, nil
}

// fail closes sess and reports the disconnect, unless the session was
// already closed on purpose.
func (m *StreamManager) fail(sess *streamSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != sess || !sess.state.Active() {
		return
	}
	m.setStateLocked(sess, models.StreamStateClosed)
	if m.sink != nil {
		m.sink.StreamFailed(sess.id, StreamDisconnectedMessage)
	}
}

func (m *StreamManager) setStateLocked(sess *streamSession, state models.StreamState) {
	sess.state = state
	if m.sink != nil && m.current == sess {
		m.sink.StreamStateChanged(sess.id, state)
	}
}

func decodeSnapshot(data string) (models.InsightSet, error) {
	var snapshot models.InsightSet
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, errors.New("empty payload")
	}
	return snapshot, nil
}
