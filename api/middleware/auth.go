package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/assoumso/au-djassa/api/responses"
	"github.com/assoumso/au-djassa/internal/session"
	pkgAuth "github.com/assoumso/au-djassa/pkg/auth"
	"github.com/assoumso/au-djassa/pkg/config"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
)

// SessionChecker confirms a session id minted into a token is still live.
type SessionChecker interface {
	Get(id string) (session.Session, error)
}

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, sessions SessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.SessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			// Role and supplier id come from the live session, not the
			// claims, so a logout demotes outstanding tokens immediately.
			role := string(claims.Role)
			supplierID := claims.SupplierID
			if sessions != nil {
				live, err := sessions.Get(claims.SessionID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "session unavailable"))
					return
				}
				role = string(live.Role)
				supplierID = nil
				if live.Supplier != nil {
					id := live.Supplier.ID
					supplierID = &id
				}
			}

			ctx := context.WithValue(r.Context(), ctxSessionID, claims.SessionID)
			ctx = context.WithValue(ctx, ctxRole, role)
			if supplierID != nil {
				ctx = context.WithValue(ctx, ctxSupplierID, *supplierID)
			}

			if logg != nil {
				ctx = logg.WithSessionID(ctx, claims.SessionID)
				ctx = logg.WithActorRole(ctx, role)
				if supplierID != nil {
					ctx = logg.WithField(ctx, "supplier_id", *supplierID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
