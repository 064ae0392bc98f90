package main

import (
	"encoding/json"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mod/nitro-snake/game"
)

// Server configuration constants
const (
	ServerAddr    = ":8080"
	StaticDir     = "./web"
	WebSocketPath = "/ws"

	MaxSessions   = 64 // one simulation session per connection
	IPCooldownSec = 5  // min seconds between connects from one IP
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu    sync.Mutex
	times map[string]time.Time
}

func newIPRateLimiter() *ipRateLimiter {
	rl := &ipRateLimiter{times: make(map[string]time.Time)}
	// Cleanup stale entries every 60s
	go func() {
		for range time.Tick(60 * time.Second) {
			rl.mu.Lock()
			cutoff := time.Now().Add(-time.Duration(IPCooldownSec) * time.Second)
			for ip, t := range rl.times {
				if t.Before(cutoff) {
					delete(rl.times, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok {
		if time.Since(last) < time.Duration(IPCooldownSec)*time.Second {
			return false
		}
	}
	rl.times[ip] = time.Now()
	return true
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// sendErrorAndClose writes a terse error payload and closes the socket.
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(map[string]string{"t": "e", "m": msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	conns := NewConnManager()
	rateLimiter := newIPRateLimiter()
	cfg := game.DefaultConfig()

	http.HandleFunc(WebSocketPath, func(w http.ResponseWriter, r *http.Request) {
		// Extract client IP (handle X-Forwarded-For for reverse proxies)
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip, _, _ = net.SplitHostPort(r.RemoteAddr)
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("ws upgrade error")
			return
		}

		// Check limits after upgrade so the client can receive error messages
		if conns.Count() >= MaxSessions {
			sendErrorAndClose(ws, "Server full. Please try again later.")
			return
		}
		if !rateLimiter.allow(ip) {
			sendErrorAndClose(ws, "Too many connections. Please wait a few seconds.")
			return
		}

		conn := NewConn(ws, log)
		conns.Add(conn)
		log.Info().Str("conn", conn.ID).Str("ip", ip).Msg("player connected")

		// Welcome immediately so the client knows its id and board size
		_ = conn.Send(WelcomeMsg{Type: MsgWelcome, ID: conn.ID, Rows: cfg.Rows, Cols: cfg.Cols})
		_ = conn.Send(stateMsg(conn.session.Snapshot()))

		onDisconnect := func(c *Conn) {
			conns.Remove(c.ID)
			log.Info().Str("conn", c.ID).Msg("player disconnected")
		}

		// Blocking read loop — runs until the client disconnects
		conn.ReadLoop(onDisconnect)
	})

	// Serve static client files
	staticDir := StaticDir
	if env := os.Getenv("NITRO_SNAKE_STATIC_DIR"); env != "" {
		staticDir = env
	}
	http.Handle("/", http.FileServer(http.Dir(staticDir)))

	addr := ServerAddr
	if env := os.Getenv("NITRO_SNAKE_ADDR"); env != "" {
		addr = env
	}
	log.Info().Str("addr", addr).Int("rows", cfg.Rows).Int("cols", cfg.Cols).Msg("server listening")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
