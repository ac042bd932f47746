package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// входящее сообщение от зрителя: ping либо (для операторов) команда управления
type inboundMessage struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Index  int    `json:"index,omitempty"`
	Entity string `json:"entity,omitempty"`
}

// Controls — операции управления воспроизведением, доступные операторам
// через WebSocket (то же, что REST поверхность)
type Controls interface {
	Play()
	Pause()
	Stop()
	Next() bool
	Previous() bool
	JumpTo(index int) error
	Highlight(entity string)
}

// Client — одно зрительское соединение
type Client struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
	Operator bool // может отправлять команды управления

	controls Controls
}

func NewClient(id string, conn *websocket.Conn, hub *Hub, operator bool, controls Controls) *Client {
	return &Client{
		ID:       id,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
		Operator: operator,
		controls: controls,
	}
}

// Run регистрирует клиента и запускает насосы чтения/записи
func (c *Client) Run() {
	c.Hub.Register(c)
	go c.writePump()
	c.readPump()
}

// read
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4096)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			log.Printf("Client.readPump: зритель=%s ошибка чтения: %v", c.ID, err)
			return
		}

		var in inboundMessage
		if err := json.Unmarshal(msg, &in); err != nil {
			log.Printf("Client.readPump: зритель=%s нераспознанное сообщение: %s", c.ID, string(msg))
			continue
		}

		switch in.Type {
		case "ping":
			// keepalive от клиента, отвечать не обязательно
		case "control":
			if !c.Operator || c.controls == nil {
				log.Printf("Client.readPump: зритель=%s без прав оператора прислал команду %q", c.ID, in.Action)
				continue
			}
			c.handleControl(in)
		}
	}
}

func (c *Client) handleControl(in inboundMessage) {
	log.Printf("Client.handleControl: оператор=%s команда=%s", c.ID, in.Action)
	switch in.Action {
	case "play":
		c.controls.Play()
	case "pause":
		c.controls.Pause()
	case "stop":
		c.controls.Stop()
	case "next":
		c.controls.Next()
	case "previous":
		c.controls.Previous()
	case "jump":
		if err := c.controls.JumpTo(in.Index); err != nil {
			log.Printf("Client.handleControl: оператор=%s неверный индекс %d: %v", c.ID, in.Index, err)
		}
	case "highlight":
		c.controls.Highlight(in.Entity)
	}
}

// write
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("Client.writePump: зритель=%s ошибка записи: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
