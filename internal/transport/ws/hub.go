package ws

import (
	"log/slog"
	"sync"

	"github.com/cwrk-planet/activities/internal/domain"
)

// subscriberQueue is how many undelivered messages a subscriber may hold
// before the hub drops it.
const subscriberQueue = 32

type Conn interface {
	Send(msg Message) error
	Close() error
	Activity() string
}

// subscriber delivers queued messages to one Conn from its own goroutine.
type subscriber struct {
	conn Conn
	out  chan Message
	done chan struct{}
	once sync.Once
}

func (s *subscriber) run() {
	for {
		select {
		case msg := <-s.out:
			if err := s.conn.Send(msg); err != nil {
				slog.Debug("ws send failed", "activity", s.conn.Activity(), "err", err)
			}
		case <-s.done:
			return
		}
	}
}

func (s *subscriber) stop() {
	s.once.Do(func() { close(s.done) })
}

// Hub fans roster events out to the connections watching each activity.
// Broadcast only enqueues, so a slow connection never holds up the caller.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[Conn]*subscriber // activity -> subscribers
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[Conn]*subscriber)}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[c.Activity()]
	if !ok {
		set = make(map[Conn]*subscriber)
		h.subs[c.Activity()] = set
	}
	if _, dup := set[c]; dup {
		return
	}

	sub := &subscriber{conn: c, out: make(chan Message, subscriberQueue), done: make(chan struct{})}
	set[c] = sub
	go sub.run()
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	sub := h.detach(c)
	h.mu.Unlock()

	if sub != nil {
		sub.stop()
	}
}

// detach unregisters c. Callers hold h.mu.
func (h *Hub) detach(c Conn) *subscriber {
	set, ok := h.subs[c.Activity()]
	if !ok {
		return nil
	}
	sub, ok := set[c]
	if !ok {
		return nil
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subs, c.Activity())
	}
	return sub
}

// Broadcast queues msg for every subscriber of activity. Subscribers whose
// queue is full are dropped and their connection closed.
func (h *Hub) Broadcast(activity string, msg Message) {
	var slow []*subscriber

	h.mu.RLock()
	for _, sub := range h.subs[activity] {
		select {
		case sub.out <- msg:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		go h.drop(sub)
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	if cur, ok := h.subs[sub.conn.Activity()][sub.conn]; ok && cur == sub {
		h.detach(sub.conn)
	}
	h.mu.Unlock()

	sub.stop()
	slog.Warn("ws subscriber too slow, dropping", "activity", sub.conn.Activity())
	if err := sub.conn.Close(); err != nil {
		slog.Debug("ws close failed", "activity", sub.conn.Activity(), "err", err)
	}
}

// ParticipantJoined broadcasts a signup. a is the roster after the change.
func (h *Hub) ParticipantJoined(a domain.Activity, email string) {
	h.Broadcast(a.Name, Message{Type: TypeParticipantJoined, Payload: eventPayload(a, email)})
}

// ParticipantLeft broadcasts a removal. a is the roster after the change.
func (h *Hub) ParticipantLeft(a domain.Activity, email string) {
	h.Broadcast(a.Name, Message{Type: TypeParticipantLeft, Payload: eventPayload(a, email)})
}

func eventPayload(a domain.Activity, email string) ParticipantEventPayload {
	return ParticipantEventPayload{
		Activity:     a.Name,
		Email:        email,
		Participants: len(a.Participants),
		Version:      a.Version,
	}
}

func statePayload(a domain.Activity) StatePayload {
	return StatePayload{
		Activity:        a.Name,
		MaxParticipants: a.MaxParticipants,
		Participants:    a.Participants,
		Version:         a.Version,
	}
}
