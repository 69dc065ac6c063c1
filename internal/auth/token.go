package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the absolute lifetime of an issued token. There is no
// refresh mechanism; clients re-authenticate after expiry.
const TokenTTL = 12 * time.Hour

// ErrInvalidToken is the only decode failure callers ever see. Missing,
// malformed, expired, unsigned and tampered tokens are deliberately
// indistinguishable (a caller either has a session or has none).
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the decoded content of a valid token.
type Identity struct {
	UserID  uint
	IsAdmin bool
}

// IssueToken signs an HS256 credential carrying the user id and admin
// flag, expiring TokenTTL from now.
func IssueToken(secret string, userID uint, isAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"is_admin": isAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// DecodeToken verifies signature and expiry and returns the embedded
// identity. Every failure maps to ErrInvalidToken.
func DecodeToken(secret, tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return Identity{UserID: uint(sub), IsAdmin: isAdmin}, nil
}
