// Package auth holds the server-side credential primitives: session token
// signing, password hashing and registration input validation.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims binds a signed token to a server-side session and its owner.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
}

// GenerateToken signs an HS256 token for the given session.
func GenerateToken(sessionID, userID string, secretKey []byte, issuedAt time.Time, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    common.ServiceName,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
		SessionID: sessionID,
		UserID:    userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ExpiryLeeway keeps a token accepted for this long past its exp claim, so
// the session behind it is still looked up and removed as expired.
const ExpiryLeeway = 5 * time.Minute

// ParseToken verifies the signature and expiry of tokenString as of at and
// returns its claims. Tokens more than ExpiryLeeway past exp yield
// common.ErrTokenExpired, anything else that fails verification yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, at time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(common.ServiceName),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(ExpiryLeeway),
		jwt.WithTimeFunc(func() time.Time { return at }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.SessionID == "" || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
