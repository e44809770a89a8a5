package controllers

import (
	"net/http"

	"github.com/assoumso/au-djassa/api/middleware"
	"github.com/assoumso/au-djassa/api/responses"
	"github.com/assoumso/au-djassa/api/validators"
	"github.com/assoumso/au-djassa/internal/checkout"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/pkg/enums"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

type checkoutStateResponse struct {
	Step         enums.CheckoutStep `json:"step"`
	Totals       checkout.Totals    `json:"totals"`
	ErrorMessage string             `json:"errorMessage,omitempty"`
	Order        *models.Order      `json:"order,omitempty"`
	Closed       bool               `json:"closed"`
}

func newCheckoutStateResponse(flow *checkout.Flow) checkoutStateResponse {
	resp := checkoutStateResponse{
		Step:         flow.Step(),
		Totals:       flow.Totals(),
		ErrorMessage: flow.ErrorMessage(),
		Closed:       flow.Closed(),
	}
	if order, ok := flow.Order(); ok {
		resp.Order = &order
	}
	return resp
}

type checkoutStartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// CheckoutStart opens a purchase flow for the product. Starting over while a
// previous flow is live abandons it.
func CheckoutStart(registry *checkout.Registry, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutStartRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := store.ProductByID(body.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		flow := registry.Start(middleware.SessionIDFromContext(r.Context()), product, body.Quantity)
		responses.WriteSuccessStatus(w, http.StatusCreated, newCheckoutStateResponse(flow))
	}
}

// CheckoutState reports the flow's current step, totals and outcome.
func CheckoutState(registry *checkout.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := registry.Get(middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCheckoutStateResponse(flow))
	}
}

type checkoutDetailsRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Contact  string `json:"contact" validate:"required"`
}

// CheckoutDetails records the buyer form and advances to payment.
func CheckoutDetails(registry *checkout.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutDetailsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flow, err := registry.Get(middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := flow.SetDetails(body.Name, body.Location, body.Contact); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCheckoutStateResponse(flow))
	}
}

type checkoutPaymentRequest struct {
	Method   string `json:"method" validate:"required,oneof=MOBILE_MONEY CASH_ON_DELIVERY"`
	Provider string `json:"provider" validate:"omitempty,oneof=ORANGE MTN WAVE"`
}

// CheckoutPayment records the payment choice.
func CheckoutPayment(registry *checkout.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutPaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flow, err := registry.Get(middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := flow.SelectPayment(enums.PaymentMethod(body.Method), enums.MobileMoneyProvider(body.Provider)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCheckoutStateResponse(flow))
	}
}

// CheckoutConfirm persists the order and moves to the success screen.
func CheckoutConfirm(registry *checkout.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := registry.Get(middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := flow.Confirm(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCheckoutStateResponse(flow))
	}
}

// CheckoutAbandon closes the flow without ordering.
func CheckoutAbandon(registry *checkout.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registry.Drop(middleware.SessionIDFromContext(r.Context()))
		responses.WriteSuccess(w, map[string]string{"status": "abandoned"})
	}
}
