package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	AccessTokenValidity = time.Hour * 24
	ResetTokenValidity  = time.Minute * 20
)

// GenerateToken mints the session access token set as the auth cookie.
func GenerateToken(userID uint, email string, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   time.Now().Add(AccessTokenValidity).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GeneratePasswordResetToken mints the short-lived token embedded in the
// password reset link.
func GeneratePasswordResetToken(userID uint, secret string) (string, error) {
	claims := jwt.MapClaims{
		"id":    userID,
		"reset": true,
		"exp":   time.Now().Add(ResetTokenValidity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims verifies the signature and expiry, returning the
// claims on success.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
