package main

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mod/nitro-snake/game"
)

// Conn manages a single WebSocket player and the simulation session
// it owns. Direction input is fire-and-forget: each input message
// calls straight into SetDirection, so the latest value at tick time
// wins and nothing is queued.
type Conn struct {
	ID      string
	ws      *websocket.Conn
	session *game.Session
	log     zerolog.Logger

	mu     sync.Mutex // protects ws writes, loop and closed
	loop   *game.Loop
	closed bool
}

// NewConn wraps a WebSocket in a connection with a fresh Idle session.
func NewConn(ws *websocket.Conn, log zerolog.Logger) *Conn {
	id := uuid.New().String()
	return &Conn{
		ID:      id,
		ws:      ws,
		session: game.NewSession(game.DefaultConfig()),
		log:     log.With().Str("conn", id).Logger(),
	}
}

// Send serializes msg to JSON and writes it to the WebSocket.
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// startLoop launches the tick driver for this session, unless one is
// already running. Each tick is relayed to the client as a StateMsg;
// collision additionally sends a GameOverMsg.
func (c *Conn) startLoop() {
	c.mu.Lock()
	if c.closed || c.loopRunningLocked() {
		c.mu.Unlock()
		return
	}
	loop := game.NewLoop(c.session, c.log)
	loop.OnTick = func(res game.TickResult) {
		if err := c.Send(stateMsg(res.State)); err != nil {
			c.log.Warn().Err(err).Msg("state send failed")
		}
	}
	loop.OnGameOver = func() {
		snap := c.session.Snapshot()
		_ = c.Send(GameOverMsg{Type: MsgGameOver, Score: snap.Score, Ticks: snap.Ticks})
	}
	c.loop = loop
	c.mu.Unlock()

	go loop.Run()
}

// loopRunningLocked reports whether the current loop is still alive.
// Caller must hold c.mu.
func (c *Conn) loopRunningLocked() bool {
	if c.loop == nil {
		return false
	}
	select {
	case <-c.loop.Done():
		return false
	default:
		return true
	}
}

// stopLoop cancels the tick driver if one is running.
func (c *Conn) stopLoop() {
	c.mu.Lock()
	loop := c.loop
	c.mu.Unlock()
	if loop != nil {
		loop.Stop()
	}
}

// Close stops the loop and marks the connection closed.
func (c *Conn) Close() {
	c.stopLoop()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.ws.Close()
}

// ReadLoop handles incoming messages until the client disconnects.
// onDisconnect is called once when the connection closes.
func (c *Conn) ReadLoop(onDisconnect func(conn *Conn)) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("ws read error")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Warn().Err(err).Msg("bad message")
			continue
		}

		switch msg.Type {
		case MsgInput: // "i"
			if d, ok := parseDirection(msg.Dir); ok {
				c.session.SetDirection(d)
			}

		case MsgStart: // "s"
			c.startLoop()

		case MsgStop: // "p"
			c.stopLoop()

		case MsgReset: // "r"
			c.stopLoop()
			c.session.Reset()
			_ = c.Send(stateMsg(c.session.Snapshot()))
		}
	}
}

// ConnManager tracks active connections for the session cap.
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewConnManager creates an empty connection manager.
func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// Add registers a connection.
func (m *ConnManager) Add(c *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID] = c
}

// Remove unregisters a connection.
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Count returns the number of active connections.
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}
