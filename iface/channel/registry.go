package channel

import (
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Registry holds at most one Channel per EndpointKey.
type Registry struct {
	mutex    sync.Mutex
	channels map[EndpointKey]*Channel
}

// CreateOrGet returns the Channel of key, creating it if it does not exist.
// On failure, the error is *CreationError and the registry is unchanged.
func (r *Registry) CreateOrGet(key EndpointKey) (*Channel, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if ch := r.channels[key]; ch != nil {
		return ch, nil
	}

	ch, e := open(key)
	if e != nil {
		logger.Warn("channel creation error", zap.String("key", string(key)), zap.Error(e))
		return nil, &CreationError{Key: key, Err: e}
	}

	r.channels[key] = ch
	logger.Info("channel created", zap.String("key", string(key)), zap.Stringer("local", ch.LocalAddr()))
	return ch, nil
}

// Find returns the Channel of key, or nil if it does not exist.
func (r *Registry) Find(key EndpointKey) *Channel {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.channels[key]
}

// List returns all channels sorted by key.
func (r *Registry) List() (list []*Channel) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, ch := range r.channels {
		list = append(list, ch)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].key < list[j].key })
	return list
}

// Close closes all channels and empties the registry.
func (r *Registry) Close() (e error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key, ch := range r.channels {
		e = multierr.Append(e, ch.close())
		delete(r.channels, key)
	}
	return e
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		channels: map[EndpointKey]*Channel{},
	}
}
