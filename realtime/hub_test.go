package realtime

import (
	"context"
	"testing"
	"time"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc, chan struct{}) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	return hub, cancel, stopped
}

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub, cancel, stopped := startHub(t)
	defer func() {
		cancel()
		<-stopped
	}()

	client := &Client{hub: hub, send: make(chan []byte, sendBufferSize)}
	if !hub.add(client) {
		t.Fatal("add failed while hub is running")
	}

	hub.Publish(NewEvent(EventBrandCreated, map[string]string{"id": "b-1"}))

	select {
	case msg := <-client.send:
		if len(msg) == 0 {
			t.Error("empty broadcast payload")
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}

	hub.remove(client)
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel closed after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after unregister")
	}
}

// Shutdown must unblock connection setup and teardown, not strand their
// goroutines on unbuffered channel sends.
func TestHubStopUnblocksAddAndRemove(t *testing.T) {
	hub, cancel, stopped := startHub(t)

	client := &Client{hub: hub, send: make(chan []byte, sendBufferSize)}
	if !hub.add(client) {
		t.Fatal("add failed while hub is running")
	}

	cancel()
	<-stopped

	// The registered client's channel was closed by the stop path.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel closed on hub stop")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on hub stop")
	}

	finished := make(chan struct{})
	go func() {
		hub.remove(client)
		hub.add(&Client{hub: hub, send: make(chan []byte, sendBufferSize)})
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("add/remove blocked after hub stopped")
	}

	if hub.add(&Client{hub: hub, send: make(chan []byte, sendBufferSize)}) {
		t.Error("add should report failure after hub stopped")
	}
}
