// Firstword Game
//
// A baby sits between two parents. One is you; the other is scripted. For
// one minute, both call out to the baby, and whoever charms it the most
// decides its first word.
//
// Features:
// - WebSockets per room ID: /firstword/:roomid and /firstword/:roomid/ws
// - Random 8-char room IDs via crypto/rand, with server-side collision check
// - One game session per room, created on first join, torn down on last leave
// - Easy mode: pick from three dealt phrases with hidden point values
// - Hard mode: free text, scored server-side against a phrase table
// - Ambient interruptions (dog, weird uncle) on their own schedules
// - Players identified by cookie (playerID)
// - In-browser QR button to share the current room, backed by go-qrcode

package main

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/firstword/game"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

// ClientMessage is every inbound websocket message. Unknown types and
// missing fields are ignored rather than rejected.
type ClientMessage struct {
	Type       string `json:"type"`                 // "join-request", "start-request", "text-submit", "choice-submit", "easy-options-request"
	Mode       string `json:"mode,omitempty"`       // start-request
	PlayerRole string `json:"playerRole,omitempty"` // start-request
	Role       string `json:"role,omitempty"`       // easy-options-request
	Text       string `json:"text,omitempty"`       // text-submit / choice-submit
	Delta      *int   `json:"delta,omitempty"`      // choice-submit
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
	connID   string
}

// Hub fans session events out to every connection in one room. It is the
// game.Broadcaster the session emits through; all rules live in the game
// package.
type Hub struct {
	id string

	mu      sync.Mutex
	clients map[*Client]bool
}

func newHub(roomID string) *Hub {
	return &Hub{
		id:      roomID,
		clients: make(map[*Client]bool),
	}
}

// Broadcast implements game.Broadcaster. Slow clients with a full send
// buffer are dropped rather than blocking the session.
func (h *Hub) Broadcast(msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// sendTo unicasts to a single client, with the same drop-on-full rule.
func (h *Hub) sendTo(c *Client, msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

// closeAll disconnects every remaining client of this hub.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

// GameManager pairs the per-room fan-out hubs with the game registry that
// owns session lifecycle.
type GameManager struct {
	mu       sync.Mutex
	hubs     map[string]*Hub
	registry *game.Registry
}

func newGameManager(settings game.Settings) *GameManager {
	return &GameManager{
		hubs:     make(map[string]*Hub),
		registry: game.NewRegistry(settings),
	}
}

// connect returns the hub and session for roomID, creating both on the
// first connection, and registers connID with the session.
func (gm *GameManager) connect(roomID, connID string) (*Hub, *game.Session) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	hub, ok := gm.hubs[roomID]
	if !ok {
		hub = newHub(roomID)
		gm.hubs[roomID] = hub
	}

	session := gm.registry.Register(roomID, connID, hub)
	return hub, session
}

// disconnect removes the client from its hub and its connection from the
// registry; rooms the registry tears down lose their hub as well.
func (gm *GameManager) disconnect(hub *Hub, c *Client) {
	hub.remove(c)

	gm.mu.Lock()
	defer gm.mu.Unlock()

	for _, roomID := range gm.registry.Remove(c.connID) {
		if stale, ok := gm.hubs[roomID]; ok {
			delete(gm.hubs, roomID)
			go stale.closeAll()
		}
	}
}

// newRoomID generates a crypto-random room ID and ensures it doesn't
// collide with an existing room.
func (gm *GameManager) newRoomID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "firstword_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := randomHex(16)
	if id == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		log.Error().Err(err).Msg("rand.Read failed")
		return ""
	}
	return hex.EncodeToString(buf)
}

// serveWSForManager upgrades the connection, registers it with the room's
// session, and runs the pumps until the socket closes.
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		roomID := ps.ByName("roomid")
		if roomID == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
			connID:   randomHex(8),
		}

		hub, session := gm.connect(roomID, client.connID)
		hub.add(client)

		log.Debug().Str("room", roomID).Str("client", realIP(r)).Msg("connection joined")

		go client.writePump()
		client.readPump(gm, hub, session)
	}
}

func (c *Client) readPump(gm *GameManager, hub *Hub, session *game.Session) {
	defer func() {
		gm.disconnect(hub, c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "join-request":
			hub.sendTo(c, session.Joined())

		case "start-request":
			session.Start(game.Mode(msg.Mode), game.Role(msg.PlayerRole))

		case "text-submit":
			session.SubmitText(msg.Text)

		case "choice-submit":
			if msg.Delta == nil {
				continue
			}
			session.SubmitChoice(msg.Text, *msg.Delta)

		case "easy-options-request":
			if reply, ok := session.EasyOptions(game.Role(msg.Role)); ok {
				hub.sendTo(c, reply)
			}

		default:
			log.Debug().Str("type", msg.Type).Msg("ignoring unknown message")
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// qrHandler generates a PNG QR code for the current room URL.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomid")
	if roomID == "" {
		http.Error(w, "missing room id", http.StatusBadRequest)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Static file paths ----

//go:embed firstword/index.html
var indexHTML []byte

//go:embed firstword/app.css
var firstwordCSS []byte

//go:embed firstword/app.js
var firstwordJS []byte

func getIndexHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(indexHTML)
	}
}

func getCssHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(firstwordCSS)
	}
}

func getJsHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(firstwordJS)
	}
}

// redirectNewGame handles GET /firstword by generating a new random room ID
// and redirecting to /firstword/:roomid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		roomID := gm.newRoomID()
		log.Debug().Str("room", roomID).Msg("created room")
		http.Redirect(w, r, cfg.prefix+path+"/"+roomID, http.StatusTemporaryRedirect)
	}
}

// registerFirstwordGame sets up routes so that:
//   - $path                  → redirects to new random room (8-char ID)
//   - $path/:roomid          → HTML client
//   - $path/:roomid/ws       → WebSocket for that room
//   - $path/:roomid/qr       → PNG QR code for that room URL
func registerFirstwordGame(cfg *Config, path string, mux *httprouter.Router) {
	settings := game.DefaultSettings()
	settings.Countdown = int(cfg.gameLength / time.Second)
	settings.HardThreshold = cfg.hardThreshold

	gm := newGameManager(settings)

	// Root path → redirect to new random room
	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	// Per-room client view (HTML)
	mux.GET(cfg.prefix+path+"/:roomid", getIndexHandler(cfg))

	// Shared assets (no roomid in route)
	mux.GET(cfg.prefix+"/assets/firstword/app.css", getCssHandler(cfg))
	mux.GET(cfg.prefix+"/assets/firstword/app.js", getJsHandler(cfg))

	// Per-room websocket
	mux.GET(cfg.prefix+path+"/:roomid/ws", serveWSForManager(cfg, gm))

	// Per-room QR code
	mux.GET(cfg.prefix+path+"/:roomid/qr", qrHandler)
}
