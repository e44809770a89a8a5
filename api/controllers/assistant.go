package controllers

import (
	"net/http"

	"github.com/assoumso/au-djassa/api/responses"
	"github.com/assoumso/au-djassa/api/validators"
	"github.com/assoumso/au-djassa/internal/assistant"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/pkg/logger"
)

type describeProductRequest struct {
	ProductName string `json:"productName" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Keywords    string `json:"keywords"`
}

// AssistantDescribeProduct generates marketing copy for a listing draft.
func AssistantDescribeProduct(svc *assistant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body describeProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		copyOut, err := svc.DescribeProduct(r.Context(), body.ProductName, body.Category, body.Keywords)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, copyOut)
	}
}

// AssistantAnalyzeTrends summarizes the live catalog for the admin dashboard.
// Generation failures degrade to a canned message instead of an error.
func AssistantAnalyzeTrends(svc *assistant.Service, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysis := svc.AnalyzeTrends(r.Context(), store.Products())
		responses.WriteSuccess(w, map[string]string{"analysis": analysis})
	}
}

type draftInquiryRequest struct {
	ProductName  string `json:"productName" validate:"required"`
	SupplierName string `json:"supplierName" validate:"required"`
	Intent       string `json:"intent" validate:"required"`
}

// AssistantDraftInquiry writes a contact message from a buyer to a supplier.
func AssistantDraftInquiry(svc *assistant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body draftInquiryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := svc.DraftInquiry(r.Context(), body.ProductName, body.SupplierName, body.Intent)
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}
