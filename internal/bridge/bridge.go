// Package bridge streams game lifecycle events to remote renderer clients
// over websocket. Events are queued without blocking the publisher; when the
// queue is full they are dropped and counted.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/waveshooter/internal/core/events/bus"
	"github.com/zeusync/waveshooter/internal/core/observability/log"
)

const (
	Path      = "/lifecycle"
	StatsPath = "/stats"
)

var (
	ErrAlreadyAttached = errors.New("bridge already attached to a bus")
	ErrInvalidQueue    = errors.New("bridge queue size must be positive")
)

type Config struct {
	Addr         string
	QueueSize    int
	WriteTimeout time.Duration
}

// Message is the JSON frame sent to clients.
type Message struct {
	Type     string         `json:"type"`
	Source   string         `json:"source"`
	Time     time.Time      `json:"time"`
	Data     any            `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type client struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(data []byte, timeout time.Duration) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type Bridge struct {
	cfg      Config
	logger   log.Log
	upgrader websocket.Upgrader
	queue    chan Message

	mu      sync.Mutex
	clients map[string]*client
	sub     bus.Subscription

	sent    atomic.Uint64
	dropped atomic.Uint64
}

func New(cfg Config, logger log.Log) (*Bridge, error) {
	if cfg.QueueSize <= 0 {
		return nil, ErrInvalidQueue
	}
	return &Bridge{
		cfg:    cfg,
		logger: logger.Named("bridge"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		queue:   make(chan Message, cfg.QueueSize),
		clients: make(map[string]*client),
	}, nil
}

// Attach subscribes the bridge to every event on b.
func (br *Bridge) Attach(b bus.EventBus) error {
	br.mu.Lock()
	defer br.mu.Unlock()
	if br.sub != nil {
		return ErrAlreadyAttached
	}
	sub, err := b.Subscribe(bus.Any, br.enqueue)
	if err != nil {
		return err
	}
	br.sub = sub
	return nil
}

func (br *Bridge) enqueue(e bus.Event) error {
	msg := Message{Type: e.Type, Source: e.Source, Time: e.Timestamp, Data: e.Data, Metadata: e.Metadata}
	select {
	case br.queue <- msg:
	default:
		br.dropped.Add(1)
	}
	return nil
}

// Stats is the JSON body served on StatsPath.
type Stats struct {
	Clients int    `json:"clients"`
	Queued  int    `json:"queued"`
	Sent    uint64 `json:"sent"`
	Dropped uint64 `json:"dropped"`
}

// Handler routes the websocket endpoint and the stats endpoint.
func (br *Bridge) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(Path, br.handleLifecycle).Methods(http.MethodGet)
	r.HandleFunc(StatsPath, br.handleStats).Methods(http.MethodGet)
	return r
}

func (br *Bridge) handleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(br.Stats())
}

func (br *Bridge) Stats() Stats {
	return Stats{Clients: br.Clients(), Queued: len(br.queue), Sent: br.Sent(), Dropped: br.Dropped()}
}

func (br *Bridge) handleLifecycle(w http.ResponseWriter, r *http.Request) {
	conn, err := br.upgrader.Upgrade(w, r, nil)
	if err != nil {
		br.logger.Warn("websocket upgrade failed", log.String("remote_addr", r.RemoteAddr), log.Error(err))
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}

	br.mu.Lock()
	br.clients[c.id] = c
	br.mu.Unlock()
	br.logger.Info("renderer connected", log.String("client", c.id), log.String("remote_addr", conn.RemoteAddr().String()))

	// Clients never send anything meaningful; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	br.drop(c)
}

func (br *Bridge) drop(c *client) {
	br.mu.Lock()
	_, ok := br.clients[c.id]
	delete(br.clients, c.id)
	br.mu.Unlock()
	if ok {
		_ = c.conn.Close()
		br.logger.Info("renderer disconnected", log.String("client", c.id))
	}
}

// Pump forwards queued events to every connected client until ctx is done.
func (br *Bridge) Pump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-br.queue:
			br.broadcast(msg)
		}
	}
}

func (br *Bridge) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		br.logger.Warn("event not encodable", log.Event(msg.Type), log.Error(err))
		return
	}

	br.mu.Lock()
	targets := make([]*client, 0, len(br.clients))
	for _, c := range br.clients {
		targets = append(targets, c)
	}
	br.mu.Unlock()

	for _, c := range targets {
		if err := c.send(data, br.cfg.WriteTimeout); err != nil {
			br.logger.Debug("write failed, dropping client", log.String("client", c.id), log.Error(err))
			br.drop(c)
			continue
		}
		br.sent.Add(1)
	}
}

// Serve runs the pump and the HTTP server on ln until ctx is done.
func (br *Bridge) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: br.Handler(), ReadHeaderTimeout: 5 * time.Second}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return br.Pump(ctx) })
	g.Go(func() error {
		br.logger.Info("bridge listening", log.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		br.closeAll()
		return err
	})
	return g.Wait()
}

// Run listens on the configured address and serves until ctx is done.
func (br *Bridge) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", br.cfg.Addr)
	if err != nil {
		return err
	}
	return br.Serve(ctx, ln)
}

func (br *Bridge) closeAll() {
	br.mu.Lock()
	clients := br.clients
	br.clients = make(map[string]*client)
	br.mu.Unlock()
	for _, c := range clients {
		_ = c.conn.Close()
	}
}

func (br *Bridge) Clients() int {
	br.mu.Lock()
	defer br.mu.Unlock()
	return len(br.clients)
}

func (br *Bridge) Sent() uint64    { return br.sent.Load() }
func (br *Bridge) Dropped() uint64 { return br.dropped.Load() }
