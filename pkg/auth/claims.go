package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/sayeedajmal/saudimart-core/pkg/enums"
)

// AccessTokenClaims represents the typed JWT the session collaborator issues.
// This core verifies and forwards tokens, it never mints or refreshes them.
type AccessTokenClaims struct {
	UserID string          `json:"user_id"`
	Role   enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the caller identity derived from a verified token.
type Identity struct {
	UserID string
	Role   enums.ActorRole
}
