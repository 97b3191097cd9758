package session

import (
	"net"
	"testing"

	"github.com/AnthonyMuncherz/pingpong-game/network"
)

type stubConn struct {
	sent   []string
	closed bool
}

func (c *stubConn) SendEvent(event string, payload interface{}) error {
	c.sent = append(c.sent, event)
	return nil
}

func (c *stubConn) ReadEnvelope() (*network.Envelope, error) { return nil, net.ErrClosed }

func (c *stubConn) Close() error {
	c.closed = true
	return nil
}

func (c *stubConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4zero, Port: 0}
}

func TestSession_Send(t *testing.T) {
	conn := &stubConn{}
	s := NewSession("sess-1", conn)

	before := s.LastActive
	if err := s.Send("room-update", map[string]int{"x": 1}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(conn.sent) != 1 || conn.sent[0] != "room-update" {
		t.Errorf("Expected one room-update on the connection, got %v", conn.sent)
	}
	if s.LastActive.Before(before) {
		t.Error("Send should refresh LastActive")
	}
}

func TestSession_Close(t *testing.T) {
	conn := &stubConn{}
	s := NewSession("sess-1", conn)

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !conn.closed {
		t.Error("Close should close the underlying connection")
	}
}

func TestManager_AddRemoveGet(t *testing.T) {
	m := NewManager()

	s1 := NewSession("sess-1", &stubConn{})
	s2 := NewSession("sess-2", &stubConn{})
	m.Add(s1)
	m.Add(s2)

	if m.Count() != 2 {
		t.Fatalf("Expected 2 sessions, got %d", m.Count())
	}
	got, exists := m.Get("sess-1")
	if !exists || got != s1 {
		t.Error("Get should return the registered session")
	}

	m.Remove("sess-1")
	if _, exists := m.Get("sess-1"); exists {
		t.Error("Removed session should not resolve")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session after removal, got %d", m.Count())
	}

	// Removing an unknown id is harmless.
	m.Remove("sess-ghost")
	if m.Count() != 1 {
		t.Errorf("Unknown removal must not change the count, got %d", m.Count())
	}
}
