package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
)

// Event is the frame pushed to connected clients when something happens to
// their orders or offers.
type Event struct {
	Type    string      `json:"type"`
	OrderID string      `json:"order_id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

type directEvent struct {
	userID int
	event  Event
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type Client struct {
	ID     int
	Socket *websocket.Conn
}

type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	broadcast  chan Event
	direct     chan directEvent
	register   chan Client
	unregister chan unreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		broadcast:  make(chan Event),
		direct:     make(chan directEvent),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

// Run owns the clients map; all map access goes through this loop.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register user=%d", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case event := <-ws.broadcast:
			for id, conn := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("broadcast error to=%d: %v", id, err)
					_ = conn.Close()
					delete(ws.clients, id)
				}
			}

		case de := <-ws.direct:
			if conn, ok := ws.clients[de.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(de.event); err != nil {
					log.Printf("direct send error to=%d: %v", de.userID, err)
					_ = conn.Close()
					delete(ws.clients, de.userID)
				}
			} else {
				log.Printf("direct skip: user=%d offline", de.userID)
			}
		}
	}
}

// SendToUser queues an event for one user without touching the clients map.
func (ws *WebSocketManager) SendToUser(userID int, event Event) {
	ws.direct <- directEvent{userID: userID, event: event}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type helloFrame struct {
	UserID int `json:"user_id"`
}

// ServeWS upgrades the connection and waits for the hello frame carrying the
// user id before registering the socket.
func (app *application) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("ws upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))

	_, raw, err := conn.ReadMessage()
	if err != nil {
		_ = conn.Close()
		return
	}
	var hello helloFrame
	if err := json.Unmarshal(raw, &hello); err != nil || hello.UserID == 0 {
		_ = conn.Close()
		return
	}

	app.wsManager.register <- Client{ID: hello.UserID, Socket: conn}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))

	go app.pingLoop(hello.UserID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			app.wsManager.unregister <- unreg{userID: hello.UserID, conn: conn}
			return
		}
	}
}

func (app *application) pingLoop(userID int, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for range ticker.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			app.wsManager.unregister <- unreg{userID: userID, conn: conn}
			return
		}
	}
}
