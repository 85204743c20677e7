// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Inbound event names accepted from clients and the outbound names they
// fan out as.
const (
	EventJoinTopic     = "joinTopic"
	EventNewCriterion  = "newCriterion"
	EventNewCandidate  = "newCandidate"
	EventNewEvaluation = "newEvaluation"

	EventCriterionAdded  = "criterionAdded"
	EventCandidateAdded  = "candidateAdded"
	EventEvaluationAdded = "evaluationAdded"
)

// Message is the wire frame for both directions: an event name plus an
// opaque payload forwarded as-is.
type Message struct {
	Event   string          `json:"event"`
	TopicID string          `json:"topicId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub tracks websocket connections grouped into per-topic rooms and relays
// change notifications between clients viewing the same topic. The hub
// carries no domain state; persistence happens over the JSON API and these
// events only tell other viewers to refetch.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]map[*client]struct{}
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	topicID string
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		rooms: make(map[string]map[*client]struct{}),
	}
}

// ServeWS handles GET /ws, upgrading the connection and pumping messages
// until the client disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn}
	defer h.drop(c)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}
		h.dispatch(c, msg)
	}
}

func (h *Hub) dispatch(c *client, msg Message) {
	switch msg.Event {
	case EventJoinTopic:
		h.join(c, msg.TopicID)
	case EventNewCriterion:
		h.broadcast(c, Message{Event: EventCriterionAdded, TopicID: c.topicID, Payload: msg.Payload})
	case EventNewCandidate:
		h.broadcast(c, Message{Event: EventCandidateAdded, TopicID: c.topicID, Payload: msg.Payload})
	case EventNewEvaluation:
		h.broadcast(c, Message{Event: EventEvaluationAdded, TopicID: c.topicID, Payload: msg.Payload})
	default:
		slog.Debug("unknown websocket event", "event", msg.Event)
	}
}

// join moves the client into the room for topicID, leaving any previous
// room first. A client watches one topic at a time.
func (h *Hub) join(c *client, topicID string) {
	if topicID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(c)
	c.topicID = topicID
	room, ok := h.rooms[topicID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[topicID] = room
	}
	room[c] = struct{}{}

	slog.Debug("client joined topic room", "topic_id", topicID, "room_size", len(room))
}

// broadcast sends msg to every client in the sender's room except the
// sender itself.
func (h *Hub) broadcast(sender *client, msg Message) {
	if sender.topicID == "" {
		return
	}

	h.mu.Lock()
	peers := make([]*client, 0, len(h.rooms[sender.topicID]))
	for c := range h.rooms[sender.topicID] {
		if c != sender {
			peers = append(peers, c)
		}
	}
	h.mu.Unlock()

	for _, c := range peers {
		c.writeMu.Lock()
		err := c.conn.WriteJSON(msg)
		c.writeMu.Unlock()
		if err != nil {
			slog.Warn("websocket write failed", "error", err)
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	h.leaveLocked(c)
	h.mu.Unlock()
	c.conn.Close()
}

func (h *Hub) leaveLocked(c *client) {
	if c.topicID == "" {
		return
	}
	if room, ok := h.rooms[c.topicID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.topicID)
		}
	}
	c.topicID = ""
}

// RoomSize reports the number of clients watching topicID.
func (h *Hub) RoomSize(topicID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[topicID])
}
