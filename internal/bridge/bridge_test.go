package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

func newBridge(t *testing.T, queue int) *Bridge {
	t.Helper()
	br, err := New(Config{QueueSize: queue, WriteTimeout: time.Second}, log.NewNop())
	require.NoError(t, err)
	return br
}

func TestBridgeForwardsEvents(t *testing.T) {
	br := newBridge(t, 16)
	b := bus.New()
	require.NoError(t, br.Attach(b))

	srv := httptest.NewServer(br.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = br.Pump(ctx) }()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + Path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return br.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, b.Publish(bus.NewEvent(bus.LevelStarted, "test", bus.LevelPayload{Name: "wave-1", Enemies: 3})))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type string           `json:"type"`
		Data bus.LevelPayload `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, bus.LevelStarted, msg.Type)
	assert.Equal(t, "wave-1", msg.Data.Name)
	assert.Equal(t, 3, msg.Data.Enemies)
	assert.Eventually(t, func() bool { return br.Sent() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return br.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestBridgeDropsWhenQueueFull(t *testing.T) {
	br := newBridge(t, 1)
	b := bus.New()
	require.NoError(t, br.Attach(b))

	for range 3 {
		require.NoError(t, b.Publish(bus.NewEvent(bus.EntityCreated, "test", nil)))
	}
	assert.Equal(t, uint64(2), br.Dropped())
}

func TestBridgeAttachOnce(t *testing.T) {
	br := newBridge(t, 1)
	b := bus.New()
	require.NoError(t, br.Attach(b))
	assert.ErrorIs(t, br.Attach(b), ErrAlreadyAttached)
}

func TestNewRejectsEmptyQueue(t *testing.T) {
	_, err := New(Config{}, log.NewNop())
	assert.ErrorIs(t, err, ErrInvalidQueue)
}

func TestBridgeStatsEndpoint(t *testing.T) {
	br := newBridge(t, 1)
	b := bus.New()
	require.NoError(t, br.Attach(b))
	for range 2 {
		require.NoError(t, b.Publish(bus.NewEvent(bus.EntityCreated, "test", nil)))
	}

	rec := httptest.NewRecorder()
	br.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, StatsPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, Stats{Queued: 1, Dropped: 1}, got)

	rec = httptest.NewRecorder()
	br.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, StatsPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
