package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assoumso/au-djassa/api/responses"
	"github.com/assoumso/au-djassa/internal/catalog"
	"github.com/assoumso/au-djassa/internal/state"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

type productListResponse struct {
	Products []models.Product `json:"products"`
	Loading  bool             `json:"loading"`
}

type supplierListResponse struct {
	Suppliers []models.Supplier `json:"suppliers"`
	Loading   bool              `json:"loading"`
}

// ListProducts filters the marketplace catalog by free-text search, category
// and supplier scope.
func ListProducts(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := catalog.Filter{
			Search:     q.Get("search"),
			Category:   q.Get("category"),
			SupplierID: q.Get("supplier"),
		}
		responses.WriteSuccess(w, productListResponse{
			Products: catalog.Products(store.Products(), filter),
			Loading:  store.Loading(),
		})
	}
}

// GetProduct fetches one product by its document id.
func GetProduct(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		product, ok := store.ProductByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListSuppliers returns the public supplier directory. Suppliers flagged
// unavailable never appear, not even for a matching search.
func ListSuppliers(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := catalog.Filter{Search: r.URL.Query().Get("search")}
		matched := catalog.Suppliers(store.Suppliers(), filter)
		out := make([]models.Supplier, 0, len(matched))
		for _, s := range matched {
			out = append(out, s.Public())
		}
		responses.WriteSuccess(w, supplierListResponse{
			Suppliers: out,
			Loading:   store.Loading(),
		})
	}
}
