package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/assoumso/au-djassa/pkg/enums"
)

// SessionTokenPayload captures the data available when minting a JWT.
type SessionTokenPayload struct {
	SessionID  string
	Role       enums.UserRole
	SupplierID *string
	JTI        string
}

// SessionTokenClaims represents the typed JWT issued to clients.
type SessionTokenClaims struct {
	SessionID  string         `json:"session_id"`
	Role       enums.UserRole `json:"role"`
	SupplierID *string        `json:"supplier_id,omitempty"`
	jwt.RegisteredClaims
}
