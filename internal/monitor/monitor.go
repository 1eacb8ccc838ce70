// Package monitor is a passive debug bridge: it broadcasts a compact
// per-frame JSON snapshot (registers, border log, beeper samples) to
// any connected websocket client, purely for external tooling to watch
// or record. Nothing in the core ever reads from it; it is a one-way
// broadcast, grounded on the teacher's pkg/display/web hub/client
// registration pattern, stripped of its two-player game logic.
package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"

	"github.com/speccygo/zx48/internal/cpu"
	"github.com/speccygo/zx48/internal/ula"
	"github.com/speccygo/zx48/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is the per-frame envelope sent to every connected client.
type Frame struct {
	A  uint8  `json:"a"`
	F  uint8  `json:"f"`
	BC uint16 `json:"bc"`
	DE uint16 `json:"de"`
	HL uint16 `json:"hl"`
	SP uint16 `json:"sp"`
	PC uint16 `json:"pc"`

	Tstates uint64 `json:"t"`
	Border  uint8  `json:"border"`

	BorderLog []ula.BorderChange `json:"borderLog,omitempty"`
	Beeper    []ula.BeeperSample `json:"beeper,omitempty"`
}

// Monitor is a single-hub websocket broadcaster. Construct one with
// New, call Run once in its own goroutine, and feed it frames with
// Publish from the Frame Driver's own goroutine.
type Monitor struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte

	lastHash uint64

	Log log.Logger
}

// New returns a Monitor with empty client set; Run must be called to
// start serving.
func New(logger log.Logger) *Monitor {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Monitor{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 64),
		Log:        logger,
	}
}

// Handler upgrades incoming HTTP requests to websocket connections and
// registers them with the hub loop.
func (m *Monitor) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.Log.Errorf("monitor: upgrade failed: %v", err)
		return
	}
	m.register <- conn
}

// Run drives client registration and broadcast delivery until the
// caller's goroutine exits; it never returns on its own.
func (m *Monitor) Run() {
	for {
		select {
		case c := <-m.register:
			m.clients[c] = true
		case c := <-m.unregister:
			if _, ok := m.clients[c]; ok {
				delete(m.clients, c)
				c.Close()
			}
		case msg := <-m.broadcast:
			for c := range m.clients {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					m.unregister <- c
				}
			}
		}
	}
}

// Publish encodes one frame's worth of state and queues it for
// broadcast, skipping the send entirely when the encoded frame is
// byte-identical to the last one published (the common case while the
// border and beeper are both quiet), exactly as the teacher's frame
// cache avoids re-sending unchanged frames.
func (m *Monitor) Publish(c *cpu.CPU, u *ula.ULA) {
	f := Frame{
		A: c.A, F: c.F,
		BC: c.BC.Get(), DE: c.DE.Get(), HL: c.HL.Get(),
		SP: c.SP, PC: c.PC,
		Tstates:   c.Tstates,
		Border:    u.Border,
		BorderLog: u.BorderLog,
		Beeper:    u.Beeper,
	}

	data, err := json.Marshal(f)
	if err != nil {
		m.Log.Errorf("monitor: encode frame: %v", err)
		return
	}

	hash := xxhash.Sum64(data)
	if hash == m.lastHash {
		return
	}
	m.lastHash = hash

	select {
	case m.broadcast <- data:
	default:
		m.Log.Debugf("monitor: broadcast channel full, dropping frame")
	}
}
