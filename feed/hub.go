// feed/hub.go
package feed

import (
	"log"
	"net/http"
	"sync"
	"time"

	"vulnops/models"

	"github.com/gorilla/websocket"
)

const (
	TypeSolve      = "solve"
	TypeFirstBlood = "first_blood"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

type Event struct {
	Type           string    `json:"type"`
	Username       string    `json:"username"`
	ChallengeID    string    `json:"challengeId"`
	ChallengeTitle string    `json:"challengeTitle"`
	Points         int       `json:"points"`
	Timestamp      time.Time `json:"timestamp"`
}

func EventFor(s models.Solve) Event {
	e := Event{
		Type:           TypeSolve,
		Username:       s.Username,
		ChallengeID:    s.ChallengeID,
		ChallengeTitle: s.ChallengeTitle,
		Points:         s.Points,
		Timestamp:      s.Timestamp,
	}
	if s.FirstBlood {
		e.Type = TypeFirstBlood
	}
	return e
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type subscriber struct {
	conn *websocket.Conn
	addr string
	send chan Event
}

// Hub çözüm olaylarını bağlı websocket istemcilerine dağıtır.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Publish hiçbir zaman bloklamaz; tamponu dolu abone düşürülür.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs {
		select {
		case s.send <- e:
		default:
			log.Printf("yavaş feed abonesi düşürüldü: %s", s.addr)
			delete(h.subs, s)
			close(s.send)
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade hata yanıtını kendisi yazar
		log.Printf("websocket yükseltilemedi: %v", err)
		return
	}

	s := &subscriber{conn: conn, addr: r.RemoteAddr, send: make(chan Event, sendBuffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(s)
	h.readLoop(s)
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.send)
	}
}

// readLoop yalnızca kapanışı ve pong'ları yakalamak için okur.
func (h *Hub) readLoop(s *subscriber) {
	defer func() {
		h.remove(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case e, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
