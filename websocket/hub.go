package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// Notice is a toast pushed to one admin's dashboard.
type Notice struct {
	UserID    uuid.UUID `json:"-"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	BookingID string    `json:"booking_id,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Notices = make(chan Notice, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Admin client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Admin client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case notice := <-Notices:
			clientsMu.RLock()
			conn, ok := clients[notice.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(notice); err != nil {
				log.Printf("Error sending notice to admin %s: %v", notice.UserID, err)
				conn.Close()
				clientsMu.Lock()
				if current, ok := clients[notice.UserID]; ok && current == conn {
					delete(clients, notice.UserID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Push queues a notice without blocking the caller; the dashboard survives a
// full channel by dropping the toast.
func Push(notice Notice) {
	notice.SentAt = time.Now()
	select {
	case Notices <- notice:
	default:
		log.Printf("Notice channel full, dropping notice for admin %s", notice.UserID)
	}
}
