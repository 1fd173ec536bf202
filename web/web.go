// Package web streams the state of a meter to browsers over a WebSocket.
package web

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vsariola/levelmeter"
)

type (
	// Snapshot is the state of a meter after one tick, as sent to clients.
	Snapshot struct {
		Level       float32 `json:"level"`
		Decibels    float32 `json:"db"`
		Fill        float32 `json:"fill"`
		Clip        float32 `json:"clip"`
		ClipVisible bool    `json:"clip_visible"`
		Accent      string  `json:"accent"`
	}

	// Hub holds the latest snapshot and serves it to every connected
	// client at a fixed rate. Publish may be called from any goroutine.
	Hub struct {
		Interval time.Duration

		mu     sync.Mutex
		latest Snapshot
	}
)

// DefaultInterval gives clients 10 updates per second.
const DefaultInterval = 100 * time.Millisecond

var upgrader = websocket.Upgrader{CheckOrigin: allowedOrigin}

// allowedOrigin accepts requests without an Origin header, from the page
// served by the same host, or from a loopback host. Hosts are compared
// exactly after parsing.
func allowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		switch u.Hostname() {
		case "localhost", "127.0.0.1", "::1":
			return true
		}
	}
	log.Printf("rejected WebSocket connection from origin: %s", origin)
	return false
}

func TakeSnapshot(m *levelmeter.LevelMeter) Snapshot {
	return Snapshot{
		Level:       m.Level(),
		Decibels:    float32(m.Decibels()),
		Fill:        m.FillFraction(),
		Clip:        m.Clip(),
		ClipVisible: m.ClipVisible(),
		Accent:      levelmeter.Colour(m.Accent()).String(),
	}
}

func NewHub() *Hub {
	return &Hub{Interval: DefaultInterval}
}

func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	h.latest = s
	h.mu.Unlock()
}

// PublishMeter is meant to be registered with monitor.Model.OnTick.
func (h *Hub) PublishMeter(m *levelmeter.LevelMeter) {
	h.Publish(TakeSnapshot(m))
}

func (h *Hub) Latest() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// ServeHTTP upgrades the connection and writes {"type":"levels"} messages
// until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
	ticker := time.NewTicker(max(h.Interval, time.Millisecond))
	defer ticker.Stop()
	for {
		if err := conn.WriteJSON(map[string]any{"type": "levels", "levels": h.Latest()}); err != nil {
			return
		}
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// ListenAndServe serves the hub at /ws on addr. It blocks like
// http.ListenAndServe.
func (h *Hub) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	return http.ListenAndServe(addr, mux)
}
