package realtime

import "sync"

// Rooms routes realtime traffic to the connections subscribed to a
// conversation. Rooms are ephemeral: membership exists only while a
// connection holds a subscription and is recomputed from scratch on every
// connect. Authorization happens before Join is called; leaving is always
// safe and needs no check.
type Rooms struct {
	mu          sync.RWMutex
	rooms       map[string]map[string]*Connection // conversationID -> connID -> connection
	memberships map[string]map[string]struct{}    // connID -> set of conversationIDs
}

// NewRooms constructs an empty room router.
func NewRooms() *Rooms {
	return &Rooms{
		rooms:       make(map[string]map[string]*Connection),
		memberships: make(map[string]map[string]struct{}),
	}
}

// Join subscribes conn to the conversation's room. Joining twice is
// idempotent; the connection still receives each broadcast once.
func (r *Rooms) Join(conversationID string, conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[conversationID]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[conversationID] = room
	}
	room[conn.ID] = conn

	member := r.memberships[conn.ID]
	if member == nil {
		member = make(map[string]struct{})
		r.memberships[conn.ID] = member
	}
	member[conversationID] = struct{}{}
}

// Leave unsubscribes conn from the conversation's room.
func (r *Rooms) Leave(conversationID string, conn *Connection) {
	r.mu.Lock()
	r.leaveLocked(conversationID, conn.ID)
	r.mu.Unlock()
}

// DropConnection removes conn from every room it joined. Called on
// disconnect.
func (r *Rooms) DropConnection(conn *Connection) {
	r.mu.Lock()
	for conversationID := range r.memberships[conn.ID] {
		r.leaveLocked(conversationID, conn.ID)
	}
	delete(r.memberships, conn.ID)
	r.mu.Unlock()
}

// IsMember reports whether any connection belonging to userID is currently
// subscribed to the conversation's room. This is the signal that suppresses
// duplicate alerting: a user viewing the conversation already receives the
// broadcast and gets no notification.
func (r *Rooms) IsMember(conversationID, userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, conn := range r.rooms[conversationID] {
		if conn.UserID == userID {
			return true
		}
	}
	return false
}

// Broadcast delivers payload to every member of the conversation's room,
// skipping connections of excludeUserID when non-empty. Returns the number
// of successful deliveries. Fan-out is synchronous and unbounded, which is
// fine for 2-party rooms only.
func (r *Rooms) Broadcast(conversationID string, payload []byte, excludeUserID string) int {
	r.mu.RLock()
	room := r.rooms[conversationID]
	targets := make([]*Connection, 0, len(room))
	for _, conn := range room {
		if excludeUserID != "" && conn.UserID == excludeUserID {
			continue
		}
		targets = append(targets, conn)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range targets {
		if conn.Send(payload) == nil {
			delivered++
		}
	}
	return delivered
}

func (r *Rooms) leaveLocked(conversationID, connID string) {
	room := r.rooms[conversationID]
	if room == nil {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(r.rooms, conversationID)
	}
	if member, ok := r.memberships[connID]; ok {
		delete(member, conversationID)
		if len(member) == 0 {
			delete(r.memberships, connID)
		}
	}
}
