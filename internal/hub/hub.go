package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/metrics"
	redisModels "github.com/Kiranpjk/RapidGigs-sub001/internal/models/redis"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"

	"github.com/redis/go-redis/v9"
)

// Conn is the slice of a websocket connection the hub needs. *websocket.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one live, authenticated connection. All writes go through write:
// the dispatch goroutine and the connection's own read loop both send events,
// and the websocket connection forbids concurrent write calls.
type Client struct {
	ID     string
	UserID uint
	Conn   Conn

	writeMu sync.Mutex
}

func (c *Client) write(event socket.SocketEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(event)
}

// Hub is the connection registry and fan-out router. Events are published to a
// redis channel and every instance's Run loop consumes them, so fan-out
// reaches connections held by other instances; the maps themselves stay
// instance-local. Constructed explicitly and passed down, never a package
// singleton.
type Hub struct {
	mu  sync.Mutex
	ctx context.Context
	rdb *redis.Client

	// users maps a user id to their single connection of record (personal
	// channel). rooms maps a conversation id to the connections currently in
	// it, keyed by connection id.
	users map[uint]*Client
	rooms map[uint]map[string]*Client
}

func NewHub(ctx context.Context, rdb *redis.Client) *Hub {
	return &Hub{
		ctx:   ctx,
		rdb:   rdb,
		users: make(map[uint]*Client),
		rooms: make(map[uint]map[string]*Client),
	}
}

// Register binds the client to its user's personal channel. A previous
// connection for the same user is superseded and closed here; its presence
// unbind later no-ops because it no longer matches the connection of record.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	previous := h.users[client.UserID]
	h.users[client.UserID] = client
	h.mu.Unlock()

	if previous != nil {
		if err := previous.Conn.Close(); err != nil {
			log.Printf("Error closing superseded connection %v: %v", previous.ID, err)
		}
	} else {
		metrics.ActiveConnections.Inc()
	}
}

// Unregister is connection-scoped: it only removes the client if it is still
// the registered one for its user, so a late disconnect of a superseded
// connection cannot evict its successor.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.users[client.UserID]; ok && current.ID == client.ID {
		delete(h.users, client.UserID)
		metrics.ActiveConnections.Dec()
	}
	for conversationID, room := range h.rooms {
		if _, ok := room[client.ID]; ok {
			delete(room, client.ID)
			if len(room) == 0 {
				delete(h.rooms, conversationID)
			}
		}
	}
}

func (h *Hub) JoinRoom(conversationID uint, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[conversationID] = room
	}
	room[client.ID] = client
}

func (h *Hub) LeaveRoom(conversationID uint, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[conversationID]; ok {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, conversationID)
		}
	}
}

func (h *Hub) PublishToConversation(conversationID, excludeUserID uint, event string, payload any) error {
	return h.publish(redisModels.RedisPublishedMessage{
		Event:          event,
		ConversationID: conversationID,
		ExcludeUserID:  excludeUserID,
	}, payload)
}

func (h *Hub) PublishToUser(userID uint, event string, payload any) error {
	return h.publish(redisModels.RedisPublishedMessage{
		Event:        event,
		TargetUserID: userID,
	}, payload)
}

func (h *Hub) Broadcast(event string, payload any) error {
	return h.publish(redisModels.RedisPublishedMessage{
		Event:     event,
		Broadcast: true,
	}, payload)
}

func (h *Hub) publish(envelope redisModels.RedisPublishedMessage, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	envelope.Payload = raw
	jsonEvent, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return h.rdb.Publish(h.ctx, redisModels.REDIS_CHANNEL_CHAT, jsonEvent).Err()
}

// Run consumes the redis fan-out channel until the context is done.
func (h *Hub) Run() error {
	pubsub := h.rdb.Subscribe(h.ctx, redisModels.REDIS_CHANNEL_CHAT)
	if _, err := pubsub.Receive(h.ctx); err != nil {
		return err
	}
	go func() {
		defer pubsub.Close()
		for msg := range pubsub.Channel() {
			var envelope redisModels.RedisPublishedMessage
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				log.Printf("Error unmarshalling fan-out envelope: %v", err)
				continue
			}
			h.dispatch(envelope)
		}
	}()
	return nil
}

// dispatch routes one envelope to its local targets. Targets with no live
// connection are silently dropped; persistence already guaranteed durability.
func (h *Hub) dispatch(envelope redisModels.RedisPublishedMessage) {
	event := socket.SocketEvent{
		Event:   envelope.Event,
		Payload: envelope.Payload,
	}

	h.mu.Lock()
	var targets []*Client
	switch {
	case envelope.Broadcast:
		for _, client := range h.users {
			targets = append(targets, client)
		}
	case envelope.TargetUserID != 0:
		if client, ok := h.users[envelope.TargetUserID]; ok {
			targets = append(targets, client)
		}
	case envelope.ConversationID != 0:
		for _, client := range h.rooms[envelope.ConversationID] {
			if envelope.ExcludeUserID != 0 && client.UserID == envelope.ExcludeUserID {
				continue
			}
			targets = append(targets, client)
		}
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		metrics.EventsDropped.WithLabelValues(envelope.Event).Inc()
		return
	}
	for _, client := range targets {
		if err := client.write(event); err != nil {
			log.Printf("Error writing event to connection %v: %v", client.ID, err)
			if closeErr := client.Conn.Close(); closeErr != nil {
				log.Printf("Error closing dead connection %v: %v", client.ID, closeErr)
			}
			h.Unregister(client)
			continue
		}
		metrics.EventsDelivered.WithLabelValues(envelope.Event).Inc()
	}
}

// Send writes an event to one specific connection, bypassing fan-out. Used
// for error replies and the online-users snapshot on connect.
func (h *Hub) Send(client *Client, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return client.write(socket.SocketEvent{Event: event, Payload: raw})
}

// Shutdown closes every registered connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, client := range h.users {
		if err := client.Conn.Close(); err != nil {
			log.Printf("Error closing connection for user %v: %v", userID, err)
		}
		delete(h.users, userID)
	}
	h.rooms = make(map[uint]map[string]*Client)
}
