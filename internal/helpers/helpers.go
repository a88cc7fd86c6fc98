package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/driveway/internal/models"
)

// TokenVerifier validates bearer tokens and yields the caller identity. When a
// JWKS URL is configured the token is checked against the identity provider's
// published keys; otherwise the shared HMAC secret is used.
type TokenVerifier struct {
	secret  []byte
	jwksURL string
}

func NewTokenVerifier(secret, jwksURL string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), jwksURL: jwksURL}
}

func (v *TokenVerifier) Verify(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, errors.New("empty token")
	}

	var keyFunc jwt.Keyfunc
	if v.jwksURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		jwks, err := keyfunc.Get(v.jwksURL, keyfunc.Options{Ctx: ctx})
		if err != nil {
			return nil, fmt.Errorf("fetch JWKS: %v", err)
		}
		defer jwks.EndBackground()
		keyFunc = jwks.Keyfunc
	} else {
		keyFunc = func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return v.secret, nil
		}
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, keyFunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok {
		return nil, fmt.Errorf("unknown role %q in token", claims.Role)
	}
	return claims, nil
}

// SignToken mints an HMAC bearer token for a user. Used by the auth endpoints;
// deployments behind an external identity provider never call this.
func SignToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// StringTrim normalizes a path or query id: strips spaces and surrounding
// quotes that show up when clients pass values straight out of JSON.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}
