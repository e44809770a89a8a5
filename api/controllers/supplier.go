package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/assoumso/au-djassa/api/middleware"
	"github.com/assoumso/au-djassa/api/responses"
	"github.com/assoumso/au-djassa/api/validators"
	"github.com/assoumso/au-djassa/internal/catalog"
	"github.com/assoumso/au-djassa/internal/imaging"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/internal/syncer"
	"github.com/assoumso/au-djassa/pkg/enums"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

// defaultProductImageURL backs listings created without a photo.
const defaultProductImageURL = "https://images.unsplash.com/photo-1556761175-5973dc0f32e7?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&q=80"

// productWriter covers the catalog mutations a supplier may perform.
type productWriter interface {
	CreateProduct(ctx context.Context, p models.Product) (models.Product, syncer.Outcome, error)
	DeleteProduct(ctx context.Context, id string) (syncer.Outcome, error)
}

// orderStatusWriter advances an order through its lifecycle.
type orderStatusWriter interface {
	SetOrderStatus(ctx context.Context, id string, status enums.OrderStatus) (syncer.Outcome, error)
}

type productResponse struct {
	Product models.Product `json:"product"`
	Outcome syncer.Outcome `json:"outcome"`
}

// SupplierProducts lists the authenticated supplier's own catalog.
func SupplierProducts(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.SupplierIDFromContext(r.Context())
		if supplierID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}
		products := catalog.Products(store.Products(), catalog.Filter{SupplierID: supplierID})
		responses.WriteSuccess(w, productListResponse{Products: products, Loading: store.Loading()})
	}
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
}

// SupplierCreateProduct publishes a listing under the authenticated supplier.
// An uploaded photo is downscaled and re-encoded; without one the listing
// falls back to a stock image.
func SupplierCreateProduct(writer productWriter, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.SupplierIDFromContext(r.Context())
		if supplierID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		imageURL := defaultProductImageURL
		if strings.TrimSpace(body.Image) != "" {
			processed, err := imaging.ProcessDataURL(body.Image)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			imageURL = processed
		}

		supplierName := ""
		if sup, ok := store.SupplierByID(supplierID); ok {
			supplierName = sup.Name
		}

		product := models.Product{
			Name:         body.Name,
			Description:  body.Description,
			Price:        body.Price,
			Category:     body.Category,
			SupplierID:   supplierID,
			SupplierName: supplierName,
			ImageURL:     imageURL,
			Tags:         body.Tags,
			CreatedAt:    time.Now().UnixMilli(),
		}

		created, outcome, err := writer.CreateProduct(r.Context(), product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, productResponse{Product: created, Outcome: outcome})
	}
}

// SupplierDeleteProduct removes a listing the supplier owns.
func SupplierDeleteProduct(writer productWriter, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.SupplierIDFromContext(r.Context())
		if supplierID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		id := chi.URLParam(r, "productId")
		product, ok := store.ProductByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		if product.SupplierID != supplierID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another supplier"))
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

type orderListResponse struct {
	Orders  []models.Order `json:"orders"`
	Loading bool           `json:"loading"`
}

// SupplierOrders lists orders placed against the supplier's products.
func SupplierOrders(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.SupplierIDFromContext(r.Context())
		if supplierID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		all := store.Orders()
		out := make([]models.Order, 0, len(all))
		for _, o := range all {
			if o.SupplierID == supplierID {
				out = append(out, o)
			}
		}
		responses.WriteSuccess(w, orderListResponse{Orders: out, Loading: store.Loading()})
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED"`
}

// SupplierUpdateOrderStatus advances one of the supplier's orders.
func SupplierUpdateOrderStatus(writer orderStatusWriter, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.SupplierIDFromContext(r.Context())
		if supplierID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		var body orderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := chi.URLParam(r, "orderId")
		order, ok := store.OrderByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		if order.SupplierID != supplierID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another supplier"))
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
