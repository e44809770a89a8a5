package controllers

import (
	"net/http"
	"time"

	"github.com/assoumso/au-djassa/api/middleware"
	"github.com/assoumso/au-djassa/api/responses"
	"github.com/assoumso/au-djassa/api/validators"
	"github.com/assoumso/au-djassa/internal/session"
	"github.com/assoumso/au-djassa/internal/syncer"
	pkgAuth "github.com/assoumso/au-djassa/pkg/auth"
	"github.com/assoumso/au-djassa/pkg/config"
	"github.com/assoumso/au-djassa/pkg/enums"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

type sessionResponse struct {
	SessionID string           `json:"sessionId"`
	Role      enums.UserRole   `json:"role"`
	View      enums.ViewState  `json:"view"`
	Supplier  *models.Supplier `json:"supplier,omitempty"`
	Token     string           `json:"token,omitempty"`
	Outcome   syncer.Outcome   `json:"outcome,omitempty"`
}

// newSessionResponse strips credentials before the supplier leaves the API.
func newSessionResponse(sess session.Session) sessionResponse {
	out := sessionResponse{
		SessionID: sess.ID,
		Role:      sess.Role,
		View:      sess.View,
	}
	if sess.Supplier != nil {
		sup := sess.Supplier.Public()
		out.Supplier = &sup
	}
	return out
}

// mintToken issues a JWT bound to the session's current role and supplier.
// Every navigation that changes either one returns a fresh token.
func mintToken(cfg config.JWTConfig, sess session.Session) (string, error) {
	payload := pkgAuth.SessionTokenPayload{
		SessionID: sess.ID,
		Role:      sess.Role,
	}
	if sess.Supplier != nil {
		id := sess.Supplier.ID
		payload.SupplierID = &id
	}
	return pkgAuth.MintSessionToken(cfg, time.Now().UTC(), payload)
}

func writeSessionWithToken(w http.ResponseWriter, r *http.Request, cfg config.JWTConfig, logg *logger.Logger, sess session.Session, outcome syncer.Outcome) {
	token, err := mintToken(cfg, sess)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt"))
		return
	}
	resp := newSessionResponse(sess)
	resp.Token = token
	resp.Outcome = outcome
	responses.WriteSuccess(w, resp)
}

// SessionBootstrap opens a session. The portal query parameter mirrors the
// storefront's URL check: "?portal=admin" grants the admin dashboard with no
// credential at all, kept as demo behavior.
func SessionBootstrap(manager *session.Manager, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := manager.Bootstrap(r.Context(), r.URL.Query().Get("portal"))
		writeSessionWithToken(w, r, cfg, logg, sess, "")
	}
}

// SessionGet returns the caller's current session.
func SessionGet(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := manager.Get(middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(sess))
	}
}

type selectRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CLIENT SUPPLIER ADMIN"`
}

// SessionSelectRole dispatches from the landing view.
func SessionSelectRole(manager *session.Manager, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body selectRoleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		sess, err := manager.SelectRole(r.Context(), middleware.SessionIDFromContext(r.Context()), role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSessionWithToken(w, r, cfg, logg, sess, "")
	}
}

// SessionGoToRegistration moves from the login form to the signup form.
func SessionGoToRegistration(manager *session.Manager, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := manager.GoToRegistration(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSessionWithToken(w, r, cfg, logg, sess, "")
	}
}

// SessionBackToLanding abandons the supplier login or signup form.
func SessionBackToLanding(manager *session.Manager, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := manager.BackToLanding(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSessionWithToken(w, r, cfg, logg, sess, "")
	}
}

type supplierLoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SupplierLogin authenticates a supplier by email or display name.
func SupplierLogin(manager *session.Manager, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body supplierLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := manager.SupplierLogin(r.Context(), middleware.SessionIDFromContext(r.Context()), body.Login, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSessionWithToken(w, r, cfg, logg, sess, "")
	}
}

type supplierRegisterRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Password    string `json:"password" validate:"required"`
}

// SupplierRegister creates a supplier account and logs it straight in.
func SupplierRegister(manager *session.Manager, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body supplierRegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, outcome, err := manager.RegisterSupplier(r.Context(), middleware.SessionIDFromContext(r.Context()), session.RegistrationInput{
			Name:        body.Name,
			Category:    body.Category,
			Description: body.Description,
			Email:       body.Email,
			Phone:       body.Phone,
			Address:     body.Address,
			Password:    body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSessionWithToken(w, r, cfg, logg, sess, outcome)
	}
}

// SessionLogout drops back to an anonymous guest on the landing view.
func SessionLogout(manager *session.Manager, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := manager.Logout(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSessionWithToken(w, r, cfg, logg, sess, "")
	}
}
