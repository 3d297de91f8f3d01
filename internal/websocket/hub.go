package websocket

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"todo-calendar/pkg/logger"
)

// Conn adalah bagian dari *websocket.Conn yang dipakai Hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// deadlineConn dipenuhi *websocket.Conn. Conn di test boleh tidak punya.
type deadlineConn interface {
	SetWriteDeadline(t time.Time) error
}

const (
	// sendQueue adalah jumlah pesan yang boleh menunggu per client.
	sendQueue = 16
	writeWait = 10 * time.Second
)

// Client merepresentasikan klien WebSocket milik satu user. Pesan ditulis
// oleh goroutine writePump milik client, bukan oleh loop Hub.
type Client struct {
	Conn   Conn
	UserID int
	send   chan []byte
	done   chan struct{}
}

// NewClient membuat Client untuk conn milik userID.
func NewClient(conn Conn, userID int) *Client {
	return &Client{
		Conn:   conn,
		UserID: userID,
		send:   make(chan []byte, sendQueue),
		done:   make(chan struct{}),
	}
}

// Done ditutup setelah writePump selesai dan conn sudah ditutup.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Event dikirim ke semua klien milik UserID.
type Event struct {
	UserID  int
	Payload []byte
}

// Hub mengelola koneksi WebSocket per user.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
}

// NewHub membuat instance Hub baru dengan antrean broadcast sebesar queue.
func NewHub(queue int) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event, queue),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run menjalankan loop Hub sampai Stop dipanggil. Loop ini tidak pernah
// menulis ke socket: client yang antreannya penuh dilepas.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if !h.Clients[client] {
				h.Clients[client] = true
				go h.writePump(client)
			}
		case client := <-h.Unregister:
			h.remove(client)
		case event := <-h.Broadcast:
			for client := range h.Clients {
				if client.UserID != event.UserID {
					continue
				}
				select {
				case client.send <- event.Payload:
				default:
					logger.SystemLogger.Warn("Websocket client too slow, disconnecting", zap.Int("user_id", client.UserID))
					h.remove(client)
				}
			}
		case <-h.done:
			for client := range h.Clients {
				h.remove(client)
			}
			return
		}
	}
}

// writePump menulis pesan dari client.send sampai channel ditutup atau
// penulisan gagal, lalu menutup conn.
func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.Close()
		close(client.done)
	}()

	for payload := range client.send {
		if dc, ok := client.Conn.(deadlineConn); ok {
			_ = dc.SetWriteDeadline(time.Now().Add(writeWait))
		}
		if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.ErrorLogger.Error("Websocket write failed", zap.Int("user_id", client.UserID), zap.Error(err))
			h.Leave(client)
			return
		}
	}
}

// Stop menghentikan Run dan menutup semua koneksi.
func (h *Hub) Stop() {
	close(h.done)
}

// Join mendaftarkan client. Mengembalikan false jika hub sudah berhenti.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave melepas client tanpa blocking setelah hub berhenti.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// remove menutup send sehingga writePump berhenti dan menutup conn.
func (h *Hub) remove(client *Client) {
	if _, ok := h.Clients[client]; ok {
		delete(h.Clients, client)
		close(client.send)
	}
}

// Publish mengantrekan v (di-encode JSON) untuk user. Tidak pernah blocking:
// jika antrean penuh event dibuang.
func (h *Hub) Publish(userID int, v interface{}) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding websocket event", zap.Error(err))
		return false
	}
	select {
	case h.Broadcast <- Event{UserID: userID, Payload: payload}:
		return true
	default:
		logger.SystemLogger.Warn("Websocket queue full, event dropped", zap.Int("user_id", userID))
		return false
	}
}
