package connectors

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Registry holds connectors keyed by normalized key. Every listing follows
// registration order.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]Connector
	order      []string
}

type Descriptor struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type HealthStatus struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

func NewRegistry() *Registry {
	return &Registry{connectors: map[string]Connector{}}
}

func (r *Registry) Register(connector Connector) error {
	if connector == nil {
		return fmt.Errorf("connector is nil")
	}

	key := normalizeKey(connector.Key())
	if key == "" {
		return fmt.Errorf("connector key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connectors[key]; exists {
		return fmt.Errorf("connector %q already registered", key)
	}

	r.connectors[key] = connector
	r.order = append(r.order, key)
	return nil
}

// Primary returns the first registered connector; it serves the data routes.
func (r *Registry) Primary() (Connector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil, false
	}
	return r.connectors[r.order[0]], true
}

// snapshot returns the connectors in registration order, the single ordering
// used by Primary, List and Health.
func (r *Registry) snapshot() []Connector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Connector, 0, len(r.order))
	for _, key := range r.order {
		list = append(list, r.connectors[key])
	}
	return list
}

func (r *Registry) List() []Descriptor {
	list := r.snapshot()
	items := make([]Descriptor, 0, len(list))
	for _, connector := range list {
		items = append(items, Descriptor{Key: connector.Key(), Name: connector.Name()})
	}
	return items
}

// Health probes each connector in registration order. Probes run one at a
// time outside the lock.
func (r *Registry) Health(ctx context.Context) []HealthStatus {
	list := r.snapshot()
	statuses := make([]HealthStatus, 0, len(list))
	for _, connector := range list {
		status := HealthStatus{Key: connector.Key(), Name: connector.Name(), Healthy: true}
		if err := connector.HealthCheck(ctx); err != nil {
			status.Healthy = false
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
