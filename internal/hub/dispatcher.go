package hub

import (
	"encoding/json"
	"log"

	"tubegrab/internal/models"
)

// Dispatcher fans one status message out to every registered
// subscriber.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Publish serializes st once and delivers the same payload to every
// connection. A failed send drops only that connection: it is
// unregistered and closed, and the pass continues with the rest.
// Deduplication is the caller's job; Publish sends whatever it is
// given.
func (d *Dispatcher) Publish(st models.Status) {
	payload, err := json.Marshal(st)
	if err != nil {
		log.Printf("❌ Broadcast marshal error: %v", err)
		return
	}

	d.registry.ForEach(func(c Conn) {
		if err := c.Send(payload); err != nil {
			log.Printf("🔌 Dropping dead subscriber: %v", err)
			d.registry.Unregister(c)
			c.Close()
		}
	})
}
