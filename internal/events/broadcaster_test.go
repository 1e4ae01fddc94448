package events

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
	"github.com/mcoot/doubles-roundrobin/internal/testutil"
)

func TestBroadcaster_NotifySendsJSONEvent(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("ABC123")
	client := NewClient("a")
	require.True(t, hub.Register(client))

	broadcaster.Notify(tournament.Event{Type: tournament.EventRoster, Code: "ABC123"})

	select {
	case msg := <-client.send:
		assert.Equal(t, "event: roster\ndata: {\"code\":\"ABC123\",\"type\":\"roster\"}\n\n", string(msg))
	case <-time.After(time.Second):
		t.Fatal("client did not receive event")
	}
}

func TestBroadcaster_NotifyWithoutListeners(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	broadcaster.Notify(tournament.Event{Type: tournament.EventSchedule, Code: "NOBODY"})

	// No hub is created for an unwatched tournament
	assert.Nil(t, manager.GetHub("NOBODY"))
}

func TestBroadcaster_DeletedClosesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("ABC123")
	client := NewClient("a")
	require.True(t, hub.Register(client))

	broadcaster.Notify(tournament.Event{Type: tournament.EventDeleted, Code: "ABC123"})

	assert.Nil(t, manager.GetHub("ABC123"))

	// The final event is flushed before the channel closes
	select {
	case msg := <-client.send:
		assert.Contains(t, string(msg), "event: deleted")
	case <-time.After(time.Second):
		t.Fatal("client did not receive deleted event")
	}
	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}
}

func TestServe_StreamsEvents(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	code := model.TournamentCode("ABC123")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		manager.Serve(w, r, code)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return strings.Join(lines, "")
			}
			lines = append(lines, line)
		}
	}

	assert.Equal(t, "event: connected\ndata: {\"code\":\"ABC123\"}\n", readEvent())

	broadcaster.Notify(tournament.Event{Type: tournament.EventSchedule, Code: code})
	assert.Equal(t, "event: schedule\ndata: {\"code\":\"ABC123\",\"type\":\"schedule\"}\n", readEvent())
}
