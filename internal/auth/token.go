package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/silsilah/bloglist-service/internal/models"
)

// TokenManager signs and parses session tokens. The wire token is an HS256
// JWT whose jti is the stored session id, so a parsed token is only as good
// as the session record behind it.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a token manager with the given signing secret
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token for the session
func (m *TokenManager) Issue(session *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   session.UserID,
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token's signature and expiry and returns the session id
// and user id it carries. Any failure maps to models.ErrTokenInvalid so the
// caller surfaces a uniform unauthorized error.
func (m *TokenManager) Parse(tokenString string) (sessionID, userID string, err error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", "", models.ErrTokenInvalid
	}
	if claims.ID == "" || claims.Subject == "" {
		return "", "", models.ErrTokenInvalid
	}
	return claims.ID, claims.Subject, nil
}
