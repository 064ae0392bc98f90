package main

import "github.com/mod/nitro-snake/game"

// Protocol uses single-character JSON keys to minimize wire size.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "i" = input {"t":"i","d":0}   (d = direction: 0 up, 1 down, 2 left, 3 right)
//     "s" = start {"t":"s"}
//     "p" = stop  {"t":"p"}
//     "r" = reset {"t":"r"}
//   Server → Client:
//     "w" = welcome   {"t":"w","i":"id","r":48,"c":48}
//     "u" = state     {"t":"u","b":[[row,col],...],"f":[row,col],"p":score,"h":"running","k":ticks}
//     "o" = game over {"t":"o","p":score,"k":ticks}
//
// Body cells are flat [row,col] pairs, tail first, head last.

// Message type identifiers — single-char for compact protocol
const (
	MsgInput    = "i"
	MsgStart    = "s"
	MsgStop     = "p"
	MsgReset    = "r"
	MsgWelcome  = "w"
	MsgState    = "u"
	MsgGameOver = "o"
)

// ClientMessage is the base incoming message.
//   {"t":"i","d":3}  direction input
//   {"t":"s"}        lifecycle command (also "p", "r")
type ClientMessage struct {
	Type string `json:"t"`
	Dir  int    `json:"d"`
}

// WelcomeMsg is sent immediately on WebSocket connect so the client
// knows its session id and the board dimensions.
type WelcomeMsg struct {
	Type string `json:"t"`
	ID   string `json:"i"`
	Rows int    `json:"r"`
	Cols int    `json:"c"`
}

// StateMsg is the per-tick session snapshot.
type StateMsg struct {
	Type  string   `json:"t"`
	Body  [][2]int `json:"b"`
	Food  [2]int   `json:"f"`
	Score int      `json:"p"`
	Phase string   `json:"h"`
	Ticks int      `json:"k"`
}

// GameOverMsg is sent once when the session collides.
type GameOverMsg struct {
	Type  string `json:"t"`
	Score int    `json:"p"`
	Ticks int    `json:"k"`
}

// stateMsg converts an engine snapshot to its wire form.
func stateMsg(snap game.Snapshot) StateMsg {
	body := make([][2]int, len(snap.Body))
	for i, c := range snap.Body {
		body[i] = [2]int{c.Row, c.Col}
	}
	return StateMsg{
		Type:  MsgState,
		Body:  body,
		Food:  [2]int{snap.Food.Row, snap.Food.Col},
		Score: snap.Score,
		Phase: snap.Phase.String(),
		Ticks: snap.Ticks,
	}
}

// parseDirection validates a wire direction value. The wire encoding
// matches the engine enum: 0 up, 1 down, 2 left, 3 right.
func parseDirection(d int) (game.Direction, bool) {
	if d < int(game.Up) || d > int(game.Right) {
		return 0, false
	}
	return game.Direction(d), true
}
