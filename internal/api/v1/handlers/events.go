package handlers

import (
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"todo-calendar/internal/config"
	"todo-calendar/internal/middleware"
	myws "todo-calendar/internal/websocket"
	"todo-calendar/pkg/logger"
)

// TaskEvents mendaftarkan koneksi ke hub dan menahannya sampai klien
// menutup koneksi. Pesan dari klien diabaikan. Handler baru kembali setelah
// writePump client selesai, karena conn dilepas Fiber begitu handler kembali.
func TaskEvents(c *websocket.Conn) {
	userID, _ := c.Locals(middleware.LocalUserID).(int)
	if config.Hub == nil {
		c.Close()
		return
	}

	client := myws.NewClient(c, userID)
	if !config.Hub.Join(client) {
		c.Close()
		return
	}
	logger.SystemLogger.Info("Websocket connected", zap.Int("user_id", userID))

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
	config.Hub.Leave(client)
	<-client.Done()
	logger.SystemLogger.Info("Websocket disconnected", zap.Int("user_id", userID))
}
