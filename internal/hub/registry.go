package hub

import "sync"

// Conn is one live subscriber channel. The transport layer owns the
// connection's lifecycle; the registry tracks membership only.
type Conn interface {
	Send(payload []byte) error
	Close() error
}

// Registry tracks the currently connected subscribers in registration
// order.
type Registry struct {
	mu    sync.Mutex
	conns []Conn
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds c. It is visible to the next broadcast pass.
func (r *Registry) Register(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns = append(r.conns, c)
}

// Unregister removes c. Removing an absent connection is a no-op.
func (r *Registry) Unregister(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.conns {
		if existing == c {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return
		}
	}
}

// ForEach calls fn once per registered connection, in registration
// order. It iterates over a snapshot, so fn (or the disconnect path on
// another goroutine) may unregister connections mid-pass without
// affecting delivery to the rest.
func (r *Registry) ForEach(fn func(Conn)) {
	r.mu.Lock()
	snapshot := make([]Conn, len(r.conns))
	copy(snapshot, r.conns)
	r.mu.Unlock()

	for _, c := range snapshot {
		fn(c)
	}
}

// Len returns the current subscriber count.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}
