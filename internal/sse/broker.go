// Package sse implements a Server-Sent Events broker that streams vault
// creations to HTTP clients.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/starford/vaultboot/internal/models"
)

// Event types.
const (
	EventVaultCreated   = "vault.created"
	EventVaultAdopted   = "vault.adopted"
	EventHistoryUpdated = "history.updated"
)

const (
	clientBuffer     = 64
	defaultReplay    = 16
	defaultKeepAlive = 15 * time.Second
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type frame struct {
	id  uint64
	raw []byte
}

// Option configures a Broker.
type Option func(*Broker)

// WithReplay sets how many recent vault events a new subscriber receives.
// Zero disables replay.
func WithReplay(n int) Option {
	return func(b *Broker) {
		if n < 0 {
			n = 0
		}
		b.replay = min(n, clientBuffer)
	}
}

// WithKeepAlive sets the interval of comment frames on idle streams.
func WithKeepAlive(d time.Duration) Option {
	return func(b *Broker) { b.keepAlive = d }
}

// Broker fans vault events out to subscribers. Every frame carries an
// increasing id; the most recent vault frames are kept for replay so a
// client that connects after a creation, or reconnects with Last-Event-ID,
// still sees it.
type Broker struct {
	historyMin time.Duration
	replay     int
	keepAlive  time.Duration

	mu          sync.Mutex
	clients     map[chan []byte]struct{}
	recent      []frame
	lastID      uint64
	lastHistory time.Time
	closed      bool
}

// NewBroker creates a broker with the given history.updated throttle
// interval.
func NewBroker(historyThrottle time.Duration, opts ...Option) *Broker {
	if historyThrottle <= 0 {
		historyThrottle = 2 * time.Second
	}
	b := &Broker{
		historyMin: historyThrottle,
		replay:     defaultReplay,
		keepAlive:  defaultKeepAlive,
		clients:    make(map[chan []byte]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Close closes every subscriber channel. Later calls are no-ops.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.clients {
		close(ch)
	}
	b.clients = nil
	b.recent = nil
}

// Subscribe adds a client that first receives every retained vault event.
func (b *Broker) Subscribe() chan []byte {
	return b.SubscribeAfter(0)
}

// SubscribeAfter adds a client that first receives the retained vault
// events with an id greater than lastID.
func (b *Broker) SubscribeAfter(lastID uint64) chan []byte {
	ch := make(chan []byte, clientBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	for _, f := range b.recent {
		if f.id > lastID {
			ch <- f.raw
		}
	}
	b.clients[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Publish sends an event to all connected clients without retaining it.
func (b *Broker) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send(event, false)
}

// VaultWritten publishes vault.created or vault.adopted for rec, followed by
// history.updated at most once per throttle interval.
func (b *Broker) VaultWritten(rec models.VaultRecord) {
	typ := EventVaultCreated
	if rec.Mode == models.ModeAdopt {
		typ = EventVaultAdopted
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.send(Event{Type: typ, Data: rec}, true)

	if now := time.Now(); now.Sub(b.lastHistory) >= b.historyMin {
		b.lastHistory = now
		b.send(Event{Type: EventHistoryUpdated, Data: map[string]string{}}, false)
	}
}

// send encodes and fans out one frame. Callers hold b.mu.
func (b *Broker) send(event Event, retain bool) {
	if b.closed {
		return
	}
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return
	}
	b.lastID++
	f := frame{
		id:  b.lastID,
		raw: fmt.Appendf(nil, "id: %d\nevent: %s\ndata: %s\n\n", b.lastID, event.Type, payload),
	}

	if retain && b.replay > 0 {
		if len(b.recent) == b.replay {
			b.recent = append(b.recent[:0], b.recent[1:]...)
		}
		b.recent = append(b.recent, f)
	}

	for ch := range b.clients {
		select {
		case ch <- f.raw:
		default:
			// Client buffer full; drop the frame.
		}
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.SubscribeAfter(lastEventID(r))
	defer b.Unsubscribe(ch)

	var tick <-chan time.Time
	if b.keepAlive > 0 {
		ticker := time.NewTicker(b.keepAlive)
		defer ticker.Stop()
		tick = ticker.C
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}

// lastEventID reads the reconnect position from the Last-Event-ID header or
// the lastEventId query parameter. Anything unparsable means replay all.
func lastEventID(r *http.Request) uint64 {
	v := r.Header.Get("Last-Event-ID")
	if v == "" {
		v = r.URL.Query().Get("lastEventId")
	}
	id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
