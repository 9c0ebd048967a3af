// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialWatch(t *testing.T, serverURL, gameID string) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(serverURL, "http://", "ws://", 1) + "/api/game/" + gameID + "/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	return msg
}

func TestWatchInitialState(t *testing.T) {
	ts := newTestServer(t)
	g := createGame(t, ts, "", NewGameRequest{})

	conn := dialWatch(t, ts.URL, g.ID)

	msg := readFrame(t, conn)
	if msg.Type != MsgTypeState {
		t.Fatalf("first frame type = %q, want %q", msg.Type, MsgTypeState)
	}
	if msg.GameID != g.ID {
		t.Errorf("frame gameId = %q, want %q", msg.GameID, g.ID)
	}
	var state Game
	if err := json.Unmarshal(msg.State, &state); err != nil {
		t.Fatalf("unmarshaling state: %v", err)
	}
	if state.ID != g.ID || state.Inning != 1 {
		t.Errorf("state = game %q inning %d, want %q inning 1", state.ID, state.Inning, g.ID)
	}
}

func TestWatchReceivesBroadcast(t *testing.T) {
	ts := newTestServer(t)
	g := createGame(t, ts, "", NewGameRequest{})

	conn := dialWatch(t, ts.URL, g.ID)
	readFrame(t, conn) // initial state

	if resp := doJSON(t, http.MethodPost, ts.URL+"/api/game/"+g.ID+"/pitch", "", PitchRequest{Pitch: PitchFastball}, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("pitch: status = %d", resp.StatusCode)
	}

	msg := readFrame(t, conn)
	if msg.Type != MsgTypeState {
		t.Fatalf("broadcast frame type = %q, want %q", msg.Type, MsgTypeState)
	}
	var state Game
	if err := json.Unmarshal(msg.State, &state); err != nil {
		t.Fatalf("unmarshaling state: %v", err)
	}
	if state.HomePitchCount != 1 {
		t.Errorf("broadcast pitch count = %d, want 1", state.HomePitchCount)
	}
}

func TestWatchPingPong(t *testing.T) {
	ts := newTestServer(t)
	g := createGame(t, ts, "", NewGameRequest{})

	conn := dialWatch(t, ts.URL, g.ID)
	readFrame(t, conn) // initial state

	if err := conn.WriteJSON(Message{Type: MsgTypePing}); err != nil {
		t.Fatal(err)
	}
	if msg := readFrame(t, conn); msg.Type != MsgTypePong {
		t.Errorf("frame type = %q, want %q", msg.Type, MsgTypePong)
	}

	if err := conn.WriteJSON(Message{Type: "GOSSIP"}); err != nil {
		t.Fatal(err)
	}
	if msg := readFrame(t, conn); msg.Type != MsgTypeError {
		t.Errorf("frame type = %q, want %q", msg.Type, MsgTypeError)
	}
}

func TestWatchUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/game/aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaaa/watch"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("dial succeeded for a game that does not exist")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("handshake response = %v, want 404", resp)
	}
}
