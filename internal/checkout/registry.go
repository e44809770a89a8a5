package checkout

import (
	"sync"

	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/models"
)

// Registry tracks at most one open checkout per session.
type Registry struct {
	mu      sync.Mutex
	flows   map[string]*Flow
	creator OrderCreator
	opts    []Option
}

// NewRegistry builds a registry; opts apply to every flow it opens.
func NewRegistry(creator OrderCreator, opts ...Option) *Registry {
	return &Registry{
		flows:   make(map[string]*Flow),
		creator: creator,
		opts:    opts,
	}
}

// Start opens a checkout for the session, abandoning any previous one.
func (r *Registry) Start(sessionID string, product models.Product, quantity int) *Flow {
	flow := NewFlow(product, quantity, r.creator, r.opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.flows[sessionID]; ok {
		prev.Abandon()
	}
	r.flows[sessionID] = flow
	return flow
}

// Get returns the session's open checkout.
func (r *Registry) Get(sessionID string) (*Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flow, ok := r.flows[sessionID]
	if !ok || flow.Closed() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open checkout for this session")
	}
	return flow, nil
}

// Drop abandons and forgets the session's checkout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if flow, ok := r.flows[sessionID]; ok {
		flow.Abandon()
		delete(r.flows, sessionID)
	}
}
