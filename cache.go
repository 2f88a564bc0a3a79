package wsendpoint

import (
	"reflect"
	"sync"
)

// metadataCache maps endpoint types to their introspected metadata. Metadata
// is built outside the lock, so two callers racing on a new type may both run
// the introspection; the first write wins and the loser's copy is discarded.
// Either way readers only ever see fully constructed entries. Entries are
// never evicted.
type metadataCache struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*Metadata
}

func newMetadataCache() *metadataCache {
	return &metadataCache{entries: make(map[reflect.Type]*Metadata)}
}

func (c *metadataCache) getOrCreate(endpointType reflect.Type) (*Metadata, error) {
	c.mu.RLock()
	meta, ok := c.entries[endpointType]
	c.mu.RUnlock()
	if ok {
		return meta, nil
	}

	built, err := introspect(endpointType)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[endpointType]; ok {
		return existing, nil
	}
	c.entries[endpointType] = built
	return built, nil
}

func (c *metadataCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
