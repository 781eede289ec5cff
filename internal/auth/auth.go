package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated identity through access tokens. CompanyID
// and Role are embedded so downstream authorization never needs another
// user lookup just to scope a query.
type Claims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenGeneratorAPI creates and validates signed tokens.
type TokenGeneratorAPI interface {
	GenerateAccessToken(claims TokenSubject) (string, error)
	GenerateRefreshToken(claims TokenSubject) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TokenSubject is what gets baked into a token.
type TokenSubject struct {
	UserID    string
	CompanyID string
	Email     string
	Role      string
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}
