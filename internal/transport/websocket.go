// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"specviz/internal/log"
)

// WebSocket serves spectrum frames to any number of connected clients.
// Frames are marshaled in Send (so the caller's buffers can be reused
// immediately) and broadcast from a dedicated goroutine; when the queue
// is full the frame is dropped rather than stalling the visualizer.
type WebSocket struct {
	listener  net.Listener
	server    *http.Server
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan []byte
}

// NewWebSocket starts a frame server on addr (host:port; port 0 picks a
// free one). Frames are published on the /ws endpoint.
func NewWebSocket(addr string) (*WebSocket, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	ws := &WebSocket{
		listener: listener,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 256),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.handleWebSocket)
	ws.server = &http.Server{Handler: mux}

	go func() {
		log.Infof("transport: serving frames on ws://%s/ws", ws.Addr())
		if err := ws.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Errorf("transport: server error: %v", err)
		}
	}()
	go ws.handleBroadcasts()

	return ws, nil
}

// Addr returns the bound listen address.
func (ws *WebSocket) Addr() string {
	return ws.listener.Addr().String()
}

func (ws *WebSocket) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("transport: upgrade error: %v", err)
		return
	}

	ws.clientsMu.Lock()
	ws.clients[conn] = true
	total := len(ws.clients)
	ws.clientsMu.Unlock()
	log.Infof("transport: client connected, total: %d", total)

	go func() {
		// Block until the client goes away.
		_, _, err := conn.ReadMessage()
		if err != nil {
			ws.clientsMu.Lock()
			delete(ws.clients, conn)
			total := len(ws.clients)
			ws.clientsMu.Unlock()
			conn.Close()
			log.Infof("transport: client disconnected, total: %d", total)
		}
	}()
}

func (ws *WebSocket) handleBroadcasts() {
	for data := range ws.broadcast {
		ws.clientsMu.Lock()
		for client := range ws.clients {
			if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warnf("transport: send failed, dropping client: %v", err)
				client.Close()
				delete(ws.clients, client)
			}
		}
		ws.clientsMu.Unlock()
	}
}

// Send queues one frame for broadcast, dropping it if the queue is full.
func (ws *WebSocket) Send(frame Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	select {
	case ws.broadcast <- data:
	default:
		// Queue full: drop, never stall the frame loop.
	}
	return nil
}

// Close disconnects all clients and shuts the server down.
func (ws *WebSocket) Close() error {
	ws.clientsMu.Lock()
	for client := range ws.clients {
		client.Close()
	}
	ws.clients = make(map[*websocket.Conn]bool)
	ws.clientsMu.Unlock()

	close(ws.broadcast)
	return ws.server.Close()
}

var _ Transport = (*WebSocket)(nil)
