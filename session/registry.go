package session

import "sync"

// Registry maps a visitor id (browser cookie) to that visitor's Store.
type Registry struct {
	mu     sync.RWMutex
	stores map[string]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// StoreFor returns the visitor's store, creating it with one empty session
// on first use.
func (r *Registry) StoreFor(visitorID string) *Store {
	r.mu.RLock()
	st, ok := r.stores[visitorID]
	r.mu.RUnlock()
	if ok {
		return st
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.stores[visitorID]; ok {
		return st
	}
	st = NewStore()
	st.Create()
	r.stores[visitorID] = st
	return st
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stores)
}
