package websocket

import (
	"log"

	"github.com/gofiber/contrib/websocket"
)

// RatesSnapshot is pushed to every connected client whenever the rate
// cache refreshes.
type RatesSnapshot struct {
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
}

// clients is owned exclusively by the RunHub goroutine; all access goes
// through the channels below.
var clients = make(map[*websocket.Conn]struct{})
var Register = make(chan *websocket.Conn)
var Unregister = make(chan *websocket.Conn)
var Broadcast = make(chan RatesSnapshot)

func RunHub() {
	for {
		select {
		case conn := <-Register:
			clients[conn] = struct{}{}
		case conn := <-Unregister:
			delete(clients, conn)
		case snapshot := <-Broadcast:
			for conn := range clients {
				if err := conn.WriteJSON(snapshot); err != nil {
					log.Printf("Error sending rates to client: %v", err)
					conn.Close()
					delete(clients, conn)
				}
			}
		}
	}
}

// ServeRates keeps a subscriber registered until its connection drops.
// Clients only listen; inbound messages are discarded.
func ServeRates(conn *websocket.Conn) {
	Register <- conn
	defer func() {
		Unregister <- conn
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
