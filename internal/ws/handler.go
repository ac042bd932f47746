package ws

import (
	"log"
	"net/http"
	"os"
	"time"

	"diplomacy_replay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler поднимает зрительские соединения и подвешивает их на hub
type WSHandler struct {
	Hub      *Hub
	Controls Controls
	// Snapshot отдает начальный кадр состояния для нового зрителя
	Snapshot func() []byte
}

func NewWSHandler(hub *Hub, controls Controls, snapshot func() []byte) *WSHandler {
	return &WSHandler{Hub: hub, Controls: controls, Snapshot: snapshot}
}

// HandleWS обновляет соединение до WebSocket. Зрители подключаются без
// токена (только чтение); валидный операторский токен в query включает
// команды управления.
func (h *WSHandler) HandleWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := false
		if token := c.Query("token"); token != "" {
			if err := service.ParseOperatorToken(token); err == nil {
				operator = true
			} else {
				log.Printf("HandleWS: невалидный операторский токен: %v", err)
			}
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("ошибка обновления ws:", err)
			return
		}

		client := NewClient(uuid.NewString(), conn, h.Hub, operator, h.Controls)

		// начальный снимок состояния, чтобы зритель не ждал следующего кадра
		if h.Snapshot != nil {
			if snap := h.Snapshot(); snap != nil {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, snap); err != nil {
					log.Printf("HandleWS: не удалось отправить снимок: %v", err)
				}
			}
		}

		go client.Run()
	}
}
