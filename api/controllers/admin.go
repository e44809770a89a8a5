package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assoumso/au-djassa/api/responses"
	"github.com/assoumso/au-djassa/api/validators"
	"github.com/assoumso/au-djassa/internal/reports"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/internal/syncer"
	"github.com/assoumso/au-djassa/pkg/enums"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

// moderationWriter covers the platform-wide toggles only admins may flip.
type moderationWriter interface {
	SetProductPromotion(ctx context.Context, id string) (syncer.Outcome, error)
	SetSupplierVerification(ctx context.Context, id string) (syncer.Outcome, error)
	DeleteProduct(ctx context.Context, id string) (syncer.Outcome, error)
}

// AdminOverview aggregates platform revenue and sales figures.
func AdminOverview(builder *reports.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, builder.Overview())
	}
}

// AdminProducts lists every product, promoted or not.
func AdminProducts(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, productListResponse{Products: store.Products(), Loading: store.Loading()})
	}
}

// AdminSuppliers lists every supplier, including the unavailable ones hidden
// from the public directory.
func AdminSuppliers(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := store.Suppliers()
		out := make([]models.Supplier, 0, len(all))
		for _, s := range all {
			out = append(out, s.Public())
		}
		responses.WriteSuccess(w, supplierListResponse{Suppliers: out, Loading: store.Loading()})
	}
}

// AdminOrders lists every order on the platform.
func AdminOrders(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, orderListResponse{Orders: store.Orders(), Loading: store.Loading()})
	}
}

// AdminToggleProductPromotion flips a product's promoted flag.
func AdminToggleProductPromotion(writer moderationWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := writer.SetProductPromotion(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "toggled", "outcome": outcome})
	}
}

// AdminToggleSupplierVerification flips a supplier's verified badge.
func AdminToggleSupplierVerification(writer moderationWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := writer.SetSupplierVerification(r.Context(), chi.URLParam(r, "supplierId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "toggled", "outcome": outcome})
	}
}

// AdminDeleteProduct removes any product, regardless of owner.
func AdminDeleteProduct(writer moderationWriter, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		if _, ok := store.ProductByID(id); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		outcome, err := writer.DeleteProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "deleted", "outcome": outcome})
	}
}

// AdminUpdateOrderStatus advances any order on the platform.
func AdminUpdateOrderStatus(writer orderStatusWriter, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body orderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := chi.URLParam(r, "orderId")
		if _, ok := store.OrderByID(id); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		outcome, err := writer.SetOrderStatus(r.Context(), id, enums.OrderStatus(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": body.Status, "outcome": outcome})
	}
}
