package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assoumso/au-djassa/internal/reports"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/internal/syncer"
	"github.com/assoumso/au-djassa/pkg/enums"
	"github.com/assoumso/au-djassa/pkg/models"
)

type stubModerationWriter struct {
	promotedID string
	verifiedID string
	deletedID  string
}

func (s *stubModerationWriter) SetProductPromotion(ctx context.Context, id string) (syncer.Outcome, error) {
	s.promotedID = id
	return syncer.OutcomeRemote, nil
}

func (s *stubModerationWriter) SetSupplierVerification(ctx context.Context, id string) (syncer.Outcome, error) {
	s.verifiedID = id
	return syncer.OutcomeRemote, nil
}

func (s *stubModerationWriter) DeleteProduct(ctx context.Context, id string) (syncer.Outcome, error) {
	s.deletedID = id
	return syncer.OutcomeRemote, nil
}

func adminStore() *state.Store {
	store := state.New()
	store.ReplaceSuppliers([]models.Supplier{
		{ID: "s1", Name: "Global Tech Imports", IsAvailable: true, Password: "123456"},
		{ID: "s3", Name: "Textile Express", IsAvailable: false},
	})
	store.ReplaceProducts([]models.Product{
		{ID: "p1", Name: "Ordinateur Portable UltraBook", Price: 850000, SupplierID: "s1"},
	})
	store.ReplaceOrders([]models.Order{
		{ID: "ord-1", ProductID: "p1", ProductName: "Ordinateur Portable UltraBook", Quantity: 1, TotalPrice: 850500, SupplierID: "s1", Status: enums.OrderStatusDelivered},
		{ID: "ord-2", ProductID: "p1", Quantity: 1, TotalPrice: 850500, SupplierID: "s1", Status: enums.OrderStatusPending},
	})
	return store
}

func TestAdminOverview(t *testing.T) {
	store := adminStore()
	rec := httptest.NewRecorder()
	AdminOverview(reports.NewBuilder(store), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/overview", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data reports.Overview `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Pending orders do not count toward revenue.
	if envelope.Data.TotalRevenue != 850500 {
		t.Fatalf("expected revenue 850500, got %d", envelope.Data.TotalRevenue)
	}
	if envelope.Data.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", envelope.Data.TotalOrders)
	}
}

func TestAdminSuppliersIncludesUnavailable(t *testing.T) {
	store := adminStore()
	rec := httptest.NewRecorder()
	AdminSuppliers(store, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/suppliers", nil))

	var envelope struct {
		Data supplierListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Suppliers) != 2 {
		t.Fatalf("expected both suppliers, got %d", len(envelope.Data.Suppliers))
	}
	for _, s := range envelope.Data.Suppliers {
		if s.Password != "" {
			t.Fatal("password leaked through the admin API")
		}
	}
}

func TestAdminToggleProductPromotion(t *testing.T) {
	writer := &stubModerationWriter{}
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/admin/products/p1/promote", nil), "productId", "p1")
	rec := httptest.NewRecorder()
	AdminToggleProductPromotion(writer, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if writer.promotedID != "p1" {
		t.Fatalf("expected p1 toggled, got %q", writer.promotedID)
	}
}

func TestAdminToggleSupplierVerification(t *testing.T) {
	writer := &stubModerationWriter{}
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/admin/suppliers/s1/verify", nil), "supplierId", "s1")
	rec := httptest.NewRecorder()
	AdminToggleSupplierVerification(writer, nil).ServeHTTP(rec, req)

	if writer.verifiedID != "s1" {
		t.Fatalf("expected s1 toggled, got %q", writer.verifiedID)
	}
}

func TestAdminDeleteProductUnknown(t *testing.T) {
	store := adminStore()
	writer := &stubModerationWriter{}
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/admin/products/nope", nil), "productId", "nope")
	rec := httptest.NewRecorder()
	AdminDeleteProduct(writer, store, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if writer.deletedID != "" {
		t.Fatal("delete must not reach the engine")
	}
}
