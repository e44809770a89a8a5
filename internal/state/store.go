// Package state holds the in-memory application state for the marketplace.
// All mutation funnels through named actions so every state change has a
// single auditable entry point, whether it originates from a remote snapshot
// or a local fallback write.
package state

import (
	"sort"
	"sync"

	"github.com/assoumso/au-djassa/pkg/enums"
	"github.com/assoumso/au-djassa/pkg/models"
)

// Store owns the three marketplace collections. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	products  []models.Product
	suppliers []models.Supplier
	orders    []models.Order

	loading bool
}

// New returns an empty store with the loading flag raised.
func New() *Store {
	return &Store{loading: true}
}

// Loading reports whether the initial snapshot (or its fallback) is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetLoading toggles the initial-load flag.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// ReplaceProducts installs a full product snapshot, newest first.
func (s *Store) ReplaceProducts(products []models.Product) {
	next := make([]models.Product, 0, len(products))
	for _, p := range products {
		next = append(next, p.Clone())
	}
	sort.SliceStable(next, func(i, j int) bool { return next[i].CreatedAt > next[j].CreatedAt })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = next
}

// ReplaceSuppliers installs a full supplier snapshot.
func (s *Store) ReplaceSuppliers(suppliers []models.Supplier) {
	next := make([]models.Supplier, 0, len(suppliers))
	next = append(next, suppliers...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers = next
}

// ReplaceOrders installs a full order snapshot, newest first.
func (s *Store) ReplaceOrders(orders []models.Order) {
	next := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		next = append(next, o.Clone())
	}
	sort.SliceStable(next, func(i, j int) bool { return next[i].Date > next[j].Date })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = next
}

// InsertProductLocal prepends a product created while the remote store was
// unavailable.
func (s *Store) InsertProductLocal(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]models.Product{p.Clone()}, s.products...)
}

// RemoveProductLocal drops the product with the given id, if present.
func (s *Store) RemoveProductLocal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
}

// SetProductPromotionLocal flips the promoted flag on the given product.
func (s *Store) SetProductPromotionLocal(id string, promoted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].IsPromoted = promoted
			return
		}
	}
}

// InsertSupplierLocal appends a supplier created while the remote store was
// unavailable.
func (s *Store) InsertSupplierLocal(sup models.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers = append(s.suppliers, sup)
}

// SetSupplierVerificationLocal flips the verified flag on the given supplier.
func (s *Store) SetSupplierVerificationLocal(id string, verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			s.suppliers[i].Verified = verified
			return
		}
	}
}

// InsertOrderLocal prepends an order created while the remote store was
// unavailable.
func (s *Store) InsertOrderLocal(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]models.Order{o.Clone()}, s.orders...)
}

// SetOrderStatusLocal updates the status of the given order.
func (s *Store) SetOrderStatusLocal(id string, status enums.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return
		}
	}
}

// Products returns a copy of the product collection.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}

// ProductByID returns a copy of the product with the given id.
func (s *Store) ProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Product{}, false
}

// ProductsEmpty reports whether the product collection holds no documents.
func (s *Store) ProductsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products) == 0
}

// Suppliers returns a copy of the supplier collection.
func (s *Store) Suppliers() []models.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Supplier, 0, len(s.suppliers))
	out = append(out, s.suppliers...)
	return out
}

// SupplierByID returns a copy of the supplier with the given id.
func (s *Store) SupplierByID(id string) (models.Supplier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sup := range s.suppliers {
		if sup.ID == id {
			return sup, true
		}
	}
	return models.Supplier{}, false
}

// SuppliersEmpty reports whether the supplier collection holds no documents.
func (s *Store) SuppliersEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.suppliers) == 0
}

// Orders returns a copy of the order collection.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

// OrderByID returns a copy of the order with the given id.
func (s *Store) OrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return models.Order{}, false
}

// OrdersEmpty reports whether the order collection holds no documents.
func (s *Store) OrdersEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders) == 0
}
