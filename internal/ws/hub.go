package ws

import (
	"log"
	"sync"

	"diplomacy_replay/internal/metrics"
)

// Hub держит всех подключенных зрителей и рассылает им кадры
// воспроизведения. Зрители только читают — состояние напрямую они
// не мутируют.
type Hub struct {
	mu      sync.RWMutex
	viewers map[string]*Client
}

func NewHub() *Hub {
	return &Hub{viewers: make(map[string]*Client)}
}

// Register добавляет зрителя в рассылку
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.viewers[c.ID] = c
	count := len(h.viewers)
	h.mu.Unlock()

	metrics.ConnectedViewers.Set(float64(count))
	log.Printf("Hub.Register: зритель=%s подключен (всего=%d)", c.ID, count)
}

// Unregister убирает зрителя из рассылки
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.viewers[c.ID]; ok {
		delete(h.viewers, c.ID)
	}
	count := len(h.viewers)
	h.mu.Unlock()

	metrics.ConnectedViewers.Set(float64(count))
	log.Printf("Hub.Unregister: зритель=%s отключен (всего=%d)", c.ID, count)
}

// Broadcast отправляет сообщение всем зрителям. Отправка неблокирующая:
// зритель с забитым каналом пропускает кадр, а не тормозит остальных.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.viewers {
		select {
		case c.Send <- msg:
		default:
			log.Printf("Hub.Broadcast: канал зрителя=%s заполнен, кадр пропущен", id)
		}
	}
}

// ViewerCount возвращает число подключенных зрителей
func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}
