package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assoumso/au-djassa/internal/checkout"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/pkg/enums"
	"github.com/assoumso/au-djassa/pkg/models"
)

type stubOrderCreator struct {
	created []models.Order
}

func (s *stubOrderCreator) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	s.created = append(s.created, order)
	return order, nil
}

func checkoutFixtures() (*checkout.Registry, *state.Store, *stubOrderCreator) {
	creator := &stubOrderCreator{}
	registry := checkout.NewRegistry(creator)
	store := state.New()
	store.ReplaceProducts([]models.Product{{
		ID:         "p1",
		Name:       "Ordinateur Portable UltraBook",
		Price:      850000,
		SupplierID: "s1",
	}})
	return registry, store, creator
}

func decodeCheckout(t *testing.T, rec *httptest.ResponseRecorder) checkoutStateResponse {
	t.Helper()
	var envelope struct {
		Data checkoutStateResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withSession(req, sessionID))
	return rec
}

func TestCheckoutFullFlow(t *testing.T) {
	registry, store, creator := checkoutFixtures()

	rec := postJSON(t, CheckoutStart(registry, store, nil), "/checkout", `{"productId":"p1","quantity":2}`, "sess-1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeCheckout(t, rec)
	if got.Step != enums.CheckoutStepDetails {
		t.Fatalf("expected details step, got %s", got.Step)
	}
	wantTotal := int64(2*850000) + checkout.ShippingFees + checkout.ServiceFees
	if got.Totals.Total != wantTotal {
		t.Fatalf("expected total %d got %d", wantTotal, got.Totals.Total)
	}

	rec = postJSON(t, CheckoutDetails(registry, nil), "/checkout/details", `{"name":"Awa","location":"Abidjan","contact":"0700000000"}`, "sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("details: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, CheckoutPayment(registry, nil), "/checkout/payment", `{"method":"MOBILE_MONEY","provider":"WAVE"}`, "sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("payment: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, CheckoutConfirm(registry, nil), "/checkout/confirm", "", "sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	got = decodeCheckout(t, rec)
	if got.Step != enums.CheckoutStepSuccess {
		t.Fatalf("expected success step, got %s", got.Step)
	}
	if got.Order == nil || got.Order.TotalPrice != wantTotal {
		t.Fatalf("unexpected order %+v", got.Order)
	}
	if len(creator.created) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(creator.created))
	}
}

func TestCheckoutStartUnknownProduct(t *testing.T) {
	registry, store, _ := checkoutFixtures()
	rec := postJSON(t, CheckoutStart(registry, store, nil), "/checkout", `{"productId":"nope"}`, "sess-1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCheckoutStateWithoutFlow(t *testing.T) {
	registry, _, _ := checkoutFixtures()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	rec := httptest.NewRecorder()
	CheckoutState(registry, nil).ServeHTTP(rec, withSession(req, "sess-1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCheckoutPaymentRejectsUnknownProvider(t *testing.T) {
	registry, store, _ := checkoutFixtures()
	postJSON(t, CheckoutStart(registry, store, nil), "/checkout", `{"productId":"p1"}`, "sess-1")
	postJSON(t, CheckoutDetails(registry, nil), "/checkout/details", `{"name":"Awa","location":"Abidjan","contact":"0700000000"}`, "sess-1")

	rec := postJSON(t, CheckoutPayment(registry, nil), "/checkout/payment", `{"method":"MOBILE_MONEY","provider":"PAYPAL"}`, "sess-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckoutAbandon(t *testing.T) {
	registry, store, _ := checkoutFixtures()
	postJSON(t, CheckoutStart(registry, store, nil), "/checkout", `{"productId":"p1"}`, "sess-1")

	req := httptest.NewRequest(http.MethodDelete, "/checkout", nil)
	rec := httptest.NewRecorder()
	CheckoutAbandon(registry, nil).ServeHTTP(rec, withSession(req, "sess-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/checkout", nil)
	rec = httptest.NewRecorder()
	CheckoutState(registry, nil).ServeHTTP(rec, withSession(req, "sess-1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("abandoned flow still reachable, got %d", rec.Code)
	}
}
