package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// ClockSkew is added to a token's expiry before a holder treats it as
// expired, absorbing drift between the shop terminal and the server clock.
const ClockSkew = 5000 * time.Millisecond

// Claims represents the access token claims
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates a new signed access token
func GenerateAccessToken(userID uint, username, role, secret string, expiryHours int) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "starwash-api",
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken validates an access token and returns claims
func ValidateAccessToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// Expired reports whether a bearer token has passed its expiry, from the
// holder's point of view: the payload segment is decoded without verifying
// the signature, since the holder has no key. Any malformed token is
// reported as expired rather than surfaced as an error (fail-closed).
func Expired(tokenString string, now time.Time) bool {
	exp, ok := peekExpiry(tokenString)
	if !ok {
		return true
	}
	return exp.Add(ClockSkew).Before(now)
}

// peekExpiry extracts the exp claim from an unverified token.
func peekExpiry(tokenString string) (time.Time, bool) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	var claims struct {
		Exp *json.Number `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == nil {
		return time.Time{}, false
	}

	secs, err := claims.Exp.Float64()
	if err != nil {
		return time.Time{}, false
	}

	return time.UnixMilli(int64(secs * 1000)), true
}
