package webstatus

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepair/lifesrc/engine/search"
)

func TestHandleStatusReturnsNoContentBeforeFirstPublish(t *testing.T) {
	s := NewServer(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHandleStatusReturnsLatestPublishedUpdate(t *testing.T) {
	s := NewServer(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.Publish(Update{
		Status:     search.Found,
		Population: 5,
		Snapshot:   search.Snapshot{Phase: 0, Width: 1, Height: 1},
	})

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got Update
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, search.Found, got.Status)
	assert.Equal(t, 5, got.Population)
}

func TestWebsocketReceivesBacklogThenBroadcastUpdates(t *testing.T) {
	s := NewServer(nil)
	s.Publish(Update{Status: search.Searching, Population: 1})

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var first Update
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, search.Searching, first.Status)
	assert.Equal(t, 1, first.Population)

	s.Publish(Update{Status: search.Found, Population: 4})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var second Update
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, search.Found, second.Status)
	assert.Equal(t, 4, second.Population)
}

func TestPublishAfterClientDisconnectDoesNotPanic(t *testing.T) {
	s := NewServer(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// Give the server goroutine a moment to notice the closed read pump
	// and publish once more; Publish must not block or panic on a
	// client whose connection has already gone away.
	time.Sleep(50 * time.Millisecond)
	assert.NotPanics(t, func() {
		s.Publish(Update{Status: search.NoMoreSolutions})
	})
}
