package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/vaultboot/internal/models"
)

// eventTypes drains ch and returns the event line of each buffered frame.
func eventTypes(ch chan []byte) []string {
	var types []string
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return types
			}
			for _, line := range strings.Split(string(msg), "\n") {
				if typ, ok := strings.CutPrefix(line, "event: "); ok {
					types = append(types, typ)
				}
			}
		default:
			return types
		}
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: EventVaultCreated, Data: map[string]string{"path": "/v/a"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.HasPrefix(s, "id: 1\nevent: vault.created\n") {
			t.Errorf("unexpected frame header in %q", s)
		}
		if !strings.Contains(s, `"path":"/v/a"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestVaultWritten_HistoryThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.VaultWritten(models.VaultRecord{Name: "a", Mode: models.ModeTemplate})
	b.VaultWritten(models.VaultRecord{Name: "b", Mode: models.ModeAdopt})

	got := eventTypes(ch)
	want := []string{EventVaultCreated, EventHistoryUpdated, EventVaultAdopted}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestSubscribe_ReplaysRecentVaults(t *testing.T) {
	b := NewBroker(time.Hour, WithReplay(2))
	defer b.Close()

	b.VaultWritten(models.VaultRecord{Name: "a", Mode: models.ModeTemplate})
	b.VaultWritten(models.VaultRecord{Name: "b", Mode: models.ModeAdopt})
	b.VaultWritten(models.VaultRecord{Name: "c", Mode: models.ModeTemplate})
	b.Publish(Event{Type: "note", Data: map[string]string{}})

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	var names []string
	for len(ch) > 0 {
		msg := string(<-ch)
		for _, n := range []string{"a", "b", "c"} {
			if strings.Contains(msg, `"name":"`+n+`"`) {
				names = append(names, n)
			}
		}
		if strings.Contains(msg, EventHistoryUpdated) || strings.Contains(msg, "event: note") {
			t.Errorf("replayed a non-vault frame: %q", msg)
		}
	}
	if strings.Join(names, ",") != "b,c" {
		t.Errorf("replayed = %v, want [b c]", names)
	}
}

func TestSubscribeAfter_SkipsSeenFrames(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	b.VaultWritten(models.VaultRecord{Name: "a", Mode: models.ModeTemplate}) // id 1, history id 2
	b.VaultWritten(models.VaultRecord{Name: "b", Mode: models.ModeTemplate}) // id 3

	ch := b.SubscribeAfter(2)
	defer b.Unsubscribe(ch)

	if len(ch) != 1 {
		t.Fatalf("replayed %d frames, want 1", len(ch))
	}
	if msg := string(<-ch); !strings.HasPrefix(msg, "id: 3\n") {
		t.Errorf("replayed %q, want frame 3", msg)
	}
}

func TestWithReplayZero(t *testing.T) {
	b := NewBroker(time.Hour, WithReplay(0))
	defer b.Close()
	b.VaultWritten(models.VaultRecord{Name: "a"})

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)
	if len(ch) != 0 {
		t.Errorf("replayed %d frames with replay disabled", len(ch))
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100*time.Millisecond, WithKeepAlive(0))
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.VaultWritten(models.VaultRecord{Name: "x", Path: "/v/x", Mode: models.ModeTemplate})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: vault.created") || !strings.Contains(body, `"name":"x"`) {
		t.Errorf("handler output missing event: %q", body)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestSSEHandler_LastEventID(t *testing.T) {
	b := NewBroker(time.Hour, WithKeepAlive(0))
	defer b.Close()
	b.VaultWritten(models.VaultRecord{Name: "old", Mode: models.ModeTemplate})
	b.VaultWritten(models.VaultRecord{Name: "new", Mode: models.ModeTemplate})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	req.Header.Set("Last-Event-ID", "1")
	w := httptest.NewRecorder()
	b.ServeHTTP(w, req)

	body := w.Body.String()
	if strings.Contains(body, `"name":"old"`) {
		t.Errorf("replayed frame the client already saw: %q", body)
	}
	if !strings.Contains(body, `"name":"new"`) {
		t.Errorf("missing replayed frame: %q", body)
	}
}

func TestSSEHandler_KeepAlive(t *testing.T) {
	b := NewBroker(time.Hour, WithKeepAlive(10*time.Millisecond))
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	b.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), ": keepalive\n\n") {
		t.Errorf("no keepalive in %q", w.Body.String())
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < clientBuffer+6; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
	if len(ch) != clientBuffer {
		t.Errorf("buffered %d, want %d", len(ch), clientBuffer)
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()
	b.Close()

	if _, ok := <-ch; ok {
		t.Fatal("expected subscriber channel to be closed")
	}
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	b.Publish(Event{Type: EventHistoryUpdated, Data: map[string]string{}})
	b.VaultWritten(models.VaultRecord{Name: "x"})
	b.Unsubscribe(ch)
	if _, ok := <-b.Subscribe(); ok {
		t.Error("subscribe after close should return a closed channel")
	}
}
