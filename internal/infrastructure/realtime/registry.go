package realtime

import "sync"

// Registry is the in-process presence registry: user identity -> active
// connection. It holds at most one connection per user; a newer connection
// replaces and closes the previous one. Entries live only for the duration
// of a connection and are rebuilt from scratch on every connect, so the
// registry is constructed at process start and owned by the socket
// controller rather than kept as package-level state.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection // userID -> connection
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Connection)}
}

// Attach registers conn for its user and starts its write loop. Any prior
// connection for the same user is closed after the swap so the user never
// drops out of the registry during a reconnect.
func (r *Registry) Attach(conn *Connection) {
	r.mu.Lock()
	previous := r.conns[conn.UserID]
	r.conns[conn.UserID] = conn
	r.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes conn if it is still the user's current connection. A stale
// detach from a connection that has already been replaced is a no-op, so a
// slow disconnect never evicts the successor.
func (r *Registry) Detach(conn *Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.conns[conn.UserID]
	if !ok || current.ID != conn.ID {
		return false
	}
	delete(r.conns, conn.UserID)
	return true
}

// IsOnline reports whether the user has an active connection on this process.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[userID]
	return ok
}

// NotifyUser delivers payload to the user's current connection, reporting
// whether delivery was enqueued.
func (r *Registry) NotifyUser(userID string, payload []byte) bool {
	r.mu.RLock()
	conn := r.conns[userID]
	r.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// BroadcastExcept delivers payload to every connected user other than
// excludeUserID. Used for the user:online / user:offline presence events.
func (r *Registry) BroadcastExcept(excludeUserID string, payload []byte) int {
	r.mu.RLock()
	targets := make([]*Connection, 0, len(r.conns))
	for userID, conn := range r.conns {
		if userID == excludeUserID {
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

// Close terminates all tracked connections and clears the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.conns = make(map[string]*Connection)
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close(1001, "registry shutdown")
	}
}
