package output

import (
	"bufio"
	"net"
	"testing"
	"time"
)

func TestTCPOutput(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	lines := make(chan string, 2)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	o := NewTCPOutput(map[any]any{
		"address":        l.Addr().String(),
		"dial_timeout":   "1s",
		"retry_interval": "100ms",
	})
	if o.config.DialTimeout != time.Second || o.config.RetryInterval != 100*time.Millisecond {
		t.Errorf("config not decoded: %+v", o.config)
	}

	o.Emit(map[string]any{"a": 1})
	o.Emit(map[string]any{"b": 2})
	defer o.Shutdown()

	for _, want := range []string{`{"a":1}`, `{"b":2}`} {
		select {
		case got := <-lines:
			if got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("timeout waiting for %s", want)
		}
	}
}

func TestTCPOutputShutdownWhileDialing(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	o := NewTCPOutput(map[any]any{"address": addr, "retry_interval": "1h"})
	done := make(chan struct{})
	go func() {
		o.Emit(map[string]any{"a": 1})
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	o.Shutdown()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Emit still blocked after Shutdown")
	}
}

func TestTCPOutputEmitAfterShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	accepted := make(chan struct{}, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		conn.Close()
		accepted <- struct{}{}
	}()

	o := NewTCPOutput(map[any]any{"address": l.Addr().String()})
	o.Shutdown()
	o.Emit(map[string]any{"a": 1})

	if o.conn != nil {
		t.Error("a shut down output holds a connection")
	}
	select {
	case <-accepted:
		t.Error("a shut down output dialed")
	case <-time.After(100 * time.Millisecond):
	}
}
