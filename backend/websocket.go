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
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Spectators only send
	// pings, so this is tight.
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Message types for the spectator feed.
const (
	MsgTypeState = "STATE"
	MsgTypePing  = "PING"
	MsgTypePong  = "PONG"
	MsgTypeError = "ERROR"
)

// Message is one frame on the spectator feed. State carries the full
// game document.
type Message struct {
	Type   string          `json:"type"`
	GameID string          `json:"gameId,omitempty"`
	State  json.RawMessage `json:"state,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Hub fans game state out to the spectators of one game. All membership
// changes and broadcasts flow through its channels and are serialized by
// the run goroutine.
type Hub struct {
	gameID string

	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	done       chan struct{}

	hm *HubManager
}

func newHub(gameID string, hm *HubManager) *Hub {
	return &Hub{
		gameID:     gameID,
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		done:       make(chan struct{}),
		hm:         hm,
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			if len(h.clients) == 0 {
				h.hm.removeHub(h.gameID)
				close(h.done)
				return
			}

		case data := <-h.broadcast:
			msg := Message{Type: MsgTypeState, GameID: h.gameID, State: data}
			for c := range h.clients {
				c.sendJSON(msg)
			}
		}
	}
}

// HubManager tracks the hub for each watched game.
type HubManager struct {
	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHubManager() *HubManager {
	return &HubManager{hubs: make(map[string]*Hub)}
}

func (hm *HubManager) getHub(gameID string) *Hub {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	if h, ok := hm.hubs[gameID]; ok {
		return h
	}
	h := newHub(gameID, hm)
	hm.hubs[gameID] = h
	go h.run()
	return h
}

func (hm *HubManager) removeHub(gameID string) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	delete(hm.hubs, gameID)
}

// BroadcastGame pushes a marshaled game document to any spectators. A
// game nobody is watching is a no-op.
func (hm *HubManager) BroadcastGame(gameID string, state []byte) {
	hm.mu.Lock()
	hub, ok := hm.hubs[gameID]
	hm.mu.Unlock()
	if !ok {
		return
	}
	select {
	case hub.broadcast <- state:
	default:
		log.Printf("Warning: Hub channel full, dropping broadcast for game %s", gameID)
	}
}

// wsClient is a middleman between the websocket connection and the hub.
type wsClient struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan Message
}

// readPump drains the connection. Spectators send nothing but pings;
// anything else gets an error frame.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			c.sendJSON(Message{Type: MsgTypePong})
		default:
			c.sendJSON(Message{Type: MsgTypeError, Error: "Unknown message type"})
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) sendJSON(msg Message) {
	select {
	case c.send <- msg:
	default:
		// Slow consumer; drop the frame rather than block the hub.
	}
}

// ServeWatch upgrades the connection and attaches the spectator to the
// game's hub, sending the current state as the first frame.
func ServeWatch(gs *GameStore, hm *HubManager, gameID string, w http.ResponseWriter, r *http.Request) {
	var snapshot []byte
	err := gs.WithGame(gameID, func(g *Game) error {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		snapshot = data
		return nil
	})
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		hub:  hm.getHub(gameID),
		conn: conn,
		send: make(chan Message, 16),
	}
	client.hub.register <- client
	client.sendJSON(Message{Type: MsgTypeState, GameID: gameID, State: snapshot})

	go client.writePump()
	go client.readPump()
}
