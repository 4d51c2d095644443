package realtime

import (
	"sync"
	"testing"
	"time"
)

// fakeWire captures frames written by a Connection's write loop so tests can
// observe deliveries without a live websocket.
type fakeWire struct {
	mu     sync.Mutex
	frames chan []byte
	closed bool
}

func newFakeWire() *fakeWire {
	return &fakeWire{frames: make(chan []byte, 16)}
}

func (f *fakeWire) WriteMessage(messageType int, data []byte) error {
	if len(data) > 0 { // skip pings
		f.frames <- data
	}
	return nil
}

func (f *fakeWire) WriteControl(messageType int, data []byte, deadline time.Time) error {
	return nil
}

func (f *fakeWire) SetWriteDeadline(t time.Time) error { return nil }

func (f *fakeWire) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeWire) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeWire) waitFrame(t *testing.T) []byte {
	t.Helper()
	select {
	case data := <-f.frames:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestRegistryAttachDetach(t *testing.T) {
	r := NewRegistry()
	conn := NewConnection("user-a", newFakeWire())

	r.Attach(conn)
	if !r.IsOnline("user-a") {
		t.Fatal("expected user-a online after attach")
	}

	if !r.Detach(conn) {
		t.Fatal("expected detach of current connection to succeed")
	}
	if r.IsOnline("user-a") {
		t.Error("expected user-a offline after detach")
	}
}

func TestRegistryReplacesPriorConnection(t *testing.T) {
	r := NewRegistry()
	first := NewConnection("user-a", newFakeWire())
	second := NewConnection("user-a", newFakeWire())

	r.Attach(first)
	r.Attach(second)

	if !first.Closed() {
		t.Error("expected the replaced connection to be closed")
	}
	if second.Closed() {
		t.Error("expected the new connection to stay open")
	}

	// A late detach from the replaced connection must not evict the new one.
	if r.Detach(first) {
		t.Error("stale detach should be a no-op")
	}
	if !r.IsOnline("user-a") {
		t.Error("expected user-a to remain online on the new connection")
	}
}

func TestRegistryNotifyUser(t *testing.T) {
	r := NewRegistry()
	w := newFakeWire()
	conn := NewConnection("user-a", w)
	r.Attach(conn)

	if !r.NotifyUser("user-a", []byte(`{"event":"notification:new"}`)) {
		t.Fatal("expected delivery to online user")
	}
	if got := string(w.waitFrame(t)); got != `{"event":"notification:new"}` {
		t.Errorf("unexpected frame: %s", got)
	}

	if r.NotifyUser("user-b", []byte("x")) {
		t.Error("expected no delivery to offline user")
	}
}

func TestRegistryBroadcastExcept(t *testing.T) {
	r := NewRegistry()
	wa, wb, wc := newFakeWire(), newFakeWire(), newFakeWire()
	r.Attach(NewConnection("user-a", wa))
	r.Attach(NewConnection("user-b", wb))
	r.Attach(NewConnection("user-c", wc))

	delivered := r.BroadcastExcept("user-a", []byte(`{"event":"user:online"}`))
	if delivered != 2 {
		t.Fatalf("expected 2 deliveries, got %d", delivered)
	}
	wb.waitFrame(t)
	wc.waitFrame(t)

	select {
	case data := <-wa.frames:
		t.Errorf("excluded user received frame: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry()
	conn := NewConnection("user-a", newFakeWire())
	r.Attach(conn)

	r.Close()

	if !conn.Closed() {
		t.Error("expected connection closed after registry shutdown")
	}
	if r.IsOnline("user-a") {
		t.Error("expected registry emptied after shutdown")
	}
}
