/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &Config{
		gameLength:    60 * time.Second,
		hardThreshold: 20,
	}

	mux := httprouter.New()
	registerFirstwordGame(cfg, "/firstword", mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dialRoom(t *testing.T, srv *httptest.Server, roomID string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/firstword/" + roomID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

// readUntil skips unrelated broadcasts (countdown ticks, rival speech)
// until a message of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()

	for i := 0; i < 32; i++ {
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["type"] == msgType {
			return msg
		}
	}
	t.Fatalf("never received a %q message", msgType)
	return nil // unreachable
}

func TestWebsocket_JoinStartRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	conn := dialRoom(t, srv, "testroom")

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "join-request"}))

	joined := readUntil(t, conn, "joined")
	assert.Equal(t, "testroom", joined["roomId"])

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":       "start-request",
		"mode":       "easy",
		"playerRole": "mom",
	}))

	update := readUntil(t, conn, "state-update")
	assert.EqualValues(t, 60, update["timeRemaining"])

	scores, ok := update["scores"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, scores["player"])
	assert.EqualValues(t, 0, scores["opponent"])
}

func TestWebsocket_EasyOptionsRequest(t *testing.T) {
	srv := newTestServer(t)
	conn := dialRoom(t, srv, "optroom")

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "easy-options-request",
		"role": "dad",
	}))

	reply := readUntil(t, conn, "easy-options")
	options, ok := reply["options"].([]any)
	require.True(t, ok)
	assert.Len(t, options, 3)

	deltas := make([]int, 0, 3)
	for _, raw := range options {
		opt := raw.(map[string]any)
		assert.NotEmpty(t, opt["text"])
		deltas = append(deltas, int(opt["delta"].(float64)))
	}
	assert.ElementsMatch(t, []int{1, 0, -1}, deltas)
}

func TestWebsocket_TextSubmitScores(t *testing.T) {
	srv := newTestServer(t)
	conn := dialRoom(t, srv, "hardroom")

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":       "start-request",
		"mode":       "hard",
		"playerRole": "mom",
	}))
	readUntil(t, conn, "state-update")

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "text-submit",
		"text": "ママ大好き",
	}))

	speech := readUntil(t, conn, "player-speech")
	assert.Equal(t, "mom", speech["role"])
	assert.Equal(t, "ママ大好き", speech["text"])
	assert.EqualValues(t, 4, speech["delta"])
}

func TestWebsocket_UnknownMessageIgnored(t *testing.T) {
	srv := newTestServer(t)
	conn := dialRoom(t, srv, "junkroom")

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "dance-request"}))

	// The connection must survive the junk and still answer a join.
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "join-request"}))
	joined := readUntil(t, conn, "joined")
	assert.Equal(t, "junkroom", joined["roomId"])
}
