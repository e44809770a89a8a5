// Package syncer keeps the in-memory state aligned with the remote document
// store. Every write goes remote first; local state only changes when the
// remote store rejects the write and a fallback applies, or when a snapshot
// lands from a live subscription.
package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/assoumso/au-djassa/internal/seed"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/pkg/docstore"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/metrics"
	"github.com/assoumso/au-djassa/pkg/models"

	"github.com/assoumso/au-djassa/pkg/enums"
)

// Remote is the write surface of the document store.
type Remote interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// Subscription delivers full collection snapshots until closed.
type Subscription interface {
	Snapshots() <-chan docstore.Snapshot
	Errs() <-chan error
	Close() error
}

// SubscribeFunc opens a live subscription on a collection.
type SubscribeFunc func(ctx context.Context, collection string) (Subscription, error)

// Outcome reports where a write landed.
type Outcome string

const (
	// OutcomeRemote means the document store acknowledged the write.
	OutcomeRemote Outcome = "remote"
	// OutcomeLocal means the write was applied to local state after a
	// remote rejection.
	OutcomeLocal Outcome = "applied_locally"
)

// Engine drives subscriptions and the remote-first write contract. A nil
// remote puts the engine in local mode: seeds install at startup and every
// write applies locally.
type Engine struct {
	remote    Remote
	subscribe SubscribeFunc
	store     *state.Store
	logg      *logger.Logger
	metrics   *metrics.SyncMetrics

	mu     sync.Mutex
	subs   []Subscription
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds an engine. remote and subscribe may both be nil for local mode.
func New(remote Remote, subscribe SubscribeFunc, store *state.Store, logg *logger.Logger, m *metrics.SyncMetrics) *Engine {
	return &Engine{
		remote:    remote,
		subscribe: subscribe,
		store:     store,
		logg:      logg,
		metrics:   m,
	}
}

func (e *Engine) localMode() bool {
	return e.remote == nil
}

// Start installs the three collection subscriptions, or the seed datasets
// when running in local mode. It never blocks on the remote store.
func (e *Engine) Start(ctx context.Context) {
	if e.localMode() || e.subscribe == nil {
		e.logg.Warn(ctx, "remote store unavailable, running in local mode with seed data")
		e.installSeeds(ctx, docstore.CollectionProducts)
		e.installSeeds(ctx, docstore.CollectionSuppliers)
		e.installSeeds(ctx, docstore.CollectionOrders)
		e.store.SetLoading(false)
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	for _, collection := range []string{
		docstore.CollectionProducts,
		docstore.CollectionSuppliers,
		docstore.CollectionOrders,
	} {
		e.watch(runCtx, collection)
	}
}

func (e *Engine) watch(ctx context.Context, collection string) {
	sub, err := e.subscribe(ctx, collection)
	if err != nil {
		e.handleSubscriptionError(ctx, collection, err)
		return
	}

	e.mu.Lock()
	e.subs = append(e.subs, sub)
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-sub.Snapshots():
				if !ok {
					return
				}
				e.applySnapshot(ctx, snap)
			case err, ok := <-sub.Errs():
				if !ok {
					return
				}
				e.handleSubscriptionError(ctx, collection, err)
			}
		}
	}()
}

// handleSubscriptionError mirrors the degraded-mode rules: a permission
// rejection seeds the collection when it is still empty so the UI has data to
// show; any other failure only gets logged. Both clear the loading flag.
func (e *Engine) handleSubscriptionError(ctx context.Context, collection string, err error) {
	ctx = e.logg.WithCollection(ctx, collection)
	if pkgerrors.IsPermissionDenied(err) {
		e.logg.Warn(ctx, "subscription denied, simulation mode active for collection")
		e.installSeeds(ctx, collection)
	} else {
		e.logg.Error(ctx, "subscription failed", err)
	}
	e.store.SetLoading(false)
}

func (e *Engine) installSeeds(ctx context.Context, collection string) {
	switch collection {
	case docstore.CollectionProducts:
		if e.store.ProductsEmpty() {
			e.store.ReplaceProducts(seed.Products())
			e.metrics.IncFallback(collection, "seed")
		}
	case docstore.CollectionSuppliers:
		if e.store.SuppliersEmpty() {
			e.store.ReplaceSuppliers(seed.Suppliers())
			e.metrics.IncFallback(collection, "seed")
		}
	case docstore.CollectionOrders:
		if e.store.OrdersEmpty() {
			e.store.ReplaceOrders(seed.Orders())
			e.metrics.IncFallback(collection, "seed")
		}
	}
}

func (e *Engine) applySnapshot(ctx context.Context, snap docstore.Snapshot) {
	started := time.Now()
	switch snap.Collection {
	case docstore.CollectionProducts:
		e.store.ReplaceProducts(decodeDocs[models.Product](ctx, e.logg, snap, func(p *models.Product, id string) { p.ID = id }))
		e.store.SetLoading(false)
	case docstore.CollectionSuppliers:
		e.store.ReplaceSuppliers(decodeDocs[models.Supplier](ctx, e.logg, snap, func(s *models.Supplier, id string) { s.ID = id }))
	case docstore.CollectionOrders:
		e.store.ReplaceOrders(decodeDocs[models.Order](ctx, e.logg, snap, func(o *models.Order, id string) { o.ID = id }))
	}
	e.metrics.ObserveSnapshot(snap.Collection, time.Since(started))
}

func decodeDocs[T any](ctx context.Context, logg *logger.Logger, snap docstore.Snapshot, setID func(*T, string)) []T {
	out := make([]T, 0, len(snap.Docs))
	for id, raw := range snap.Docs {
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			logg.Error(logg.WithCollection(ctx, snap.Collection), "skipping undecodable document", err)
			continue
		}
		setID(&doc, id)
		out = append(out, doc)
	}
	return out
}

// Close tears down all subscriptions.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	subs := e.subs
	e.subs = nil
	e.mu.Unlock()

	var errs error
	for _, sub := range subs {
		errs = multierr.Append(errs, sub.Close())
	}
	e.wg.Wait()
	return errs
}

// localID marks documents that only exist in memory. The uuid keeps two
// fallback creations in the same millisecond from sharing an id.
func localID() string {
	return "local-" + uuid.NewString()
}

// CreateProduct writes a product to the remote store. The acknowledged id is
// set on the returned product; local state is untouched because the snapshot
// carries the new document back. A rejected write inserts locally instead.
func (e *Engine) CreateProduct(ctx context.Context, p models.Product) (models.Product, Outcome, error) {
	const op = "create"
	collection := docstore.CollectionProducts

	if !e.localMode() {
		doc := p.Clone()
		doc.ID = ""
		id, err := e.remote.Create(ctx, collection, doc)
		if err == nil {
			p.ID = id
			e.metrics.IncWriteSuccess(collection, op)
			return p, OutcomeRemote, nil
		}
		e.metrics.IncWriteFailure(collection, op, string(pkgerrors.CodeOf(err)))
		if !pkgerrors.IsPermissionDenied(err) {
			e.logg.Error(e.logg.WithCollection(ctx, collection), "product create rejected", err)
			return models.Product{}, "", err
		}
	}

	if p.ID == "" {
		p.ID = localID()
	}
	e.store.InsertProductLocal(p)
	e.metrics.IncFallback(collection, op)
	return p, OutcomeLocal, nil
}

// DeleteProduct removes a product remotely, falling back to a local removal
// when the write is rejected for permissions.
func (e *Engine) DeleteProduct(ctx context.Context, id string) (Outcome, error) {
	const op = "delete"
	collection := docstore.CollectionProducts

	if !e.localMode() {
		err := e.remote.Delete(ctx, collection, id)
		if err == nil {
			e.metrics.IncWriteSuccess(collection, op)
			return OutcomeRemote, nil
		}
		e.metrics.IncWriteFailure(collection, op, string(pkgerrors.CodeOf(err)))
		if !pkgerrors.IsPermissionDenied(err) {
			e.logg.Error(e.logg.WithCollection(ctx, collection), "product delete rejected", err)
			return "", err
		}
	}

	e.store.RemoveProductLocal(id)
	e.metrics.IncFallback(collection, op)
	return OutcomeLocal, nil
}

// SetProductPromotion toggles the promoted flag on a product.
func (e *Engine) SetProductPromotion(ctx context.Context, id string) (Outcome, error) {
	const op = "promote"
	collection := docstore.CollectionProducts

	product, ok := e.store.ProductByID(id)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	next := !product.IsPromoted

	if !e.localMode() {
		err := e.remote.Update(ctx, collection, id, map[string]any{"isPromoted": next})
		if err == nil {
			e.metrics.IncWriteSuccess(collection, op)
			return OutcomeRemote, nil
		}
		e.metrics.IncWriteFailure(collection, op, string(pkgerrors.CodeOf(err)))
		if !pkgerrors.IsPermissionDenied(err) {
			e.logg.Error(e.logg.WithCollection(ctx, collection), "product promotion rejected", err)
			return "", err
		}
	}

	e.store.SetProductPromotionLocal(id, next)
	e.metrics.IncFallback(collection, op)
	return OutcomeLocal, nil
}

// CreateSupplier writes a supplier to the remote store, inserting locally on
// a rejected write.
func (e *Engine) CreateSupplier(ctx context.Context, s models.Supplier) (models.Supplier, Outcome, error) {
	const op = "create"
	collection := docstore.CollectionSuppliers

	if !e.localMode() {
		doc := s
		doc.ID = ""
		id, err := e.remote.Create(ctx, collection, doc)
		if err == nil {
			s.ID = id
			e.metrics.IncWriteSuccess(collection, op)
			return s, OutcomeRemote, nil
		}
		e.metrics.IncWriteFailure(collection, op, string(pkgerrors.CodeOf(err)))
		if !pkgerrors.IsPermissionDenied(err) {
			e.logg.Error(e.logg.WithCollection(ctx, collection), "supplier create rejected", err)
			return models.Supplier{}, "", err
		}
	}

	if s.ID == "" {
		s.ID = localID()
	}
	e.store.InsertSupplierLocal(s)
	e.metrics.IncFallback(collection, op)
	return s, OutcomeLocal, nil
}

// SetSupplierVerification toggles the verified flag on a supplier.
func (e *Engine) SetSupplierVerification(ctx context.Context, id string) (Outcome, error) {
	const op = "verify"
	collection := docstore.CollectionSuppliers

	supplier, ok := e.store.SupplierByID(id)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	next := !supplier.Verified

	if !e.localMode() {
		err := e.remote.Update(ctx, collection, id, map[string]any{"verified": next})
		if err == nil {
			e.metrics.IncWriteSuccess(collection, op)
			return OutcomeRemote, nil
		}
		e.metrics.IncWriteFailure(collection, op, string(pkgerrors.CodeOf(err)))
		if !pkgerrors.IsPermissionDenied(err) {
			e.logg.Error(e.logg.WithCollection(ctx, collection), "supplier verification rejected", err)
			return "", err
		}
	}

	e.store.SetSupplierVerificationLocal(id, next)
	e.metrics.IncFallback(collection, op)
	return OutcomeLocal, nil
}

// CreateOrder persists an order. Unlike every other write this one falls back
// locally on ANY remote failure and reports success to the buyer either way.
// The failure is still logged and counted for operators.
func (e *Engine) CreateOrder(ctx context.Context, o models.Order) (models.Order, Outcome) {
	const op = "create"
	collection := docstore.CollectionOrders

	if !e.localMode() {
		doc := o.Clone()
		doc.ID = ""
		id, err := e.remote.Create(ctx, collection, doc)
		if err == nil {
			o.ID = id
			e.metrics.IncWriteSuccess(collection, op)
			return o, OutcomeRemote
		}
		e.metrics.IncWriteFailure(collection, op, string(pkgerrors.CodeOf(err)))
		e.logg.Error(e.logg.WithCollection(ctx, collection), "order write failed, keeping order locally for continuity", err)
	}

	if o.ID == "" {
		o.ID = localID()
	}
	e.store.InsertOrderLocal(o)
	e.metrics.IncFallback(collection, op)
	return o, OutcomeLocal
}

// SetOrderStatus advances an order through its lifecycle. Transitions only
// move forward; CANCELLED is reachable from any non-terminal status.
func (e *Engine) SetOrderStatus(ctx context.Context, id string, status enums.OrderStatus) (Outcome, error) {
	const op = "status"
	collection := docstore.CollectionOrders

	order, ok := e.store.OrderByID(id)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if !order.Status.CanTransitionTo(status) {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if !e.localMode() {
		err := e.remote.Update(ctx, collection, id, map[string]any{"status": status})
		if err == nil {
			e.metrics.IncWriteSuccess(collection, op)
			return OutcomeRemote, nil
		}
		e.metrics.IncWriteFailure(collection, op, string(pkgerrors.CodeOf(err)))
		if !pkgerrors.IsPermissionDenied(err) {
			e.logg.Error(e.logg.WithCollection(ctx, collection), "order status update rejected", err)
			return "", err
		}
	}

	e.store.SetOrderStatusLocal(id, status)
	e.metrics.IncFallback(collection, op)
	return OutcomeLocal, nil
}
