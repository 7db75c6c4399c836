// Package ws is the real-time reporting channel of spec §6's clock
// adapter: the Go analogue of the VOLTTRON pubsub "Results/all" topic in
// original_source/volttron/HubAgent, implemented over gorilla/websocket
// instead of a message bus.
package ws

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"energyhub/internal/obslog"

	"github.com/gorilla/websocket"
)

// Report is what the clock adapter publishes after every tick: the
// zero-guarded top-of-horizon figures spec §6 names.
type Report struct {
	Tick             int     `json:"tick"`
	AvailableEnergy0 float64 `json:"available_energy_0"`
	AssignedEnergy0  float64 `json:"assigned_energy_0"`
	PlannedEnergy0   float64 `json:"planned_energy_0"`
}

// Broadcaster fans a Report out to every connected client, mirroring the
// connections-map pattern ollamamax's monitoring dashboard uses.
type Broadcaster struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
	upgrader    websocket.Upgrader
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		connections: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades an HTTP request to a WebSocket connection and registers
// it for future Publish calls. It blocks reading (and discarding) frames
// until the client disconnects, the conventional gorilla/websocket idiom
// for detecting a closed connection.
func (b *Broadcaster) Handle(w http.ResponseWriter, r *http.Request) {
	log := obslog.Component("ws")
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := fmt.Sprintf("client-%d", time.Now().UnixNano())
	b.mu.Lock()
	b.connections[id] = conn
	b.mu.Unlock()
	log.Info().Str("client_id", id).Msg("client connected")

	defer func() {
		b.mu.Lock()
		delete(b.connections, id)
		b.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}
	}
}

// Publish sends report to every connected client, dropping any connection
// that errors on write.
func (b *Broadcaster) Publish(report Report) {
	b.mu.RLock()
	targets := make(map[string]*websocket.Conn, len(b.connections))
	for id, conn := range b.connections {
		targets[id] = conn
	}
	b.mu.RUnlock()

	for id, conn := range targets {
		if err := conn.WriteJSON(report); err != nil {
			b.mu.Lock()
			delete(b.connections, id)
			b.mu.Unlock()
			conn.Close()
		}
	}
}
