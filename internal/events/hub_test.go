package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/doubles-roundrobin/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "roster",
			data:      `{"code":"ABC123","type":"roster"}`,
			expected:  "event: roster\ndata: {\"code\":\"ABC123\",\"type\":\"roster\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "schedule",
			data:      "{\n  \"code\": \"ABC123\"\n}",
			expected:  "event: schedule\ndata: {\ndata:   \"code\": \"ABC123\"\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\n", []string{"line1"}},
		{"empty string", "", []string{""}},
		{"crlf line endings", "line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub("TESTCODE", testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient("127.0.0.1:1000")
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("roster", "data")

	select {
	case msg := <-client.send:
		assert.Equal(t, "event: roster\ndata: data\n\n", string(msg))
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient("127.0.0.1:1000")
	require.True(t, hub.Register(client))
	hub.Unregister(client)

	// Unregistering closes the send channel
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.send
	assert.False(t, open)
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newRunningHub(t)

	clients := []*Client{NewClient("a"), NewClient("b"), NewClient("c")}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("update", "data")

	for i, c := range clients {
		select {
		case msg := <-c.send:
			assert.Equal(t, "event: update\ndata: data\n\n", string(msg), "client %d", i)
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client %d did not receive message", i)
		}
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient("a")
	require.True(t, hub.Register(client))
	hub.Close()

	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}

	// A closed hub refuses new clients
	assert.False(t, hub.Register(NewClient("b")))
	// Closing twice is harmless
	hub.Close()
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	hub1 := manager.GetOrCreateHub("ABC123")
	require.NotNil(t, hub1)
	assert.Same(t, hub1, manager.GetOrCreateHub("ABC123"))
	assert.NotSame(t, hub1, manager.GetOrCreateHub("XYZ789"))
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	assert.Nil(t, manager.GetHub("NOTEXIST"))

	created := manager.GetOrCreateHub("ABC123")
	assert.Same(t, created, manager.GetHub("ABC123"))
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("ABC123")
	manager.RemoveHub("ABC123")
	assert.Nil(t, manager.GetHub("ABC123"))

	// Removing a missing hub should not panic
	manager.RemoveHub("NOTEXIST")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	manager.GetOrCreateHub("EMPTY")
	active := manager.GetOrCreateHub("ACTIVE")
	require.True(t, active.Register(NewClient("a")))
	require.Eventually(t, func() bool { return active.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, manager.CleanupEmptyHubs())
	assert.Nil(t, manager.GetHub("EMPTY"))
	assert.NotNil(t, manager.GetHub("ACTIVE"))
}

func TestHubManager_RunCleanupStopsWithContext(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	manager.GetOrCreateHub("EMPTY")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return manager.GetHub("EMPTY") == nil }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
