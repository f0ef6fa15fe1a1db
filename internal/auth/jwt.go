package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "token"
	TokenTypeRefresh = "refresh"
)

var (
	jwtSecret     string
	refreshSecret string
	accessExpiry  = time.Hour
	refreshExpiry = 168 * time.Hour
)

func Init(secret, refresh string, accessMinutes, refreshHours int) error {
	if secret == "" {
		return fmt.Errorf("JWT secret is not set")
	}
	jwtSecret = secret
	refreshSecret = refresh
	if refreshSecret == "" {
		refreshSecret = secret
	}
	if accessMinutes > 0 {
		accessExpiry = time.Duration(accessMinutes) * time.Minute
	}
	if refreshHours > 0 {
		refreshExpiry = time.Duration(refreshHours) * time.Hour
	}
	return nil
}

func GenerateJWT(userID uint, email, role, tokenType string) (string, error) {
	expiry := accessExpiry
	secret := jwtSecret

	if tokenType == TokenTypeRefresh {
		expiry = refreshExpiry
		secret = refreshSecret
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"type":    tokenType,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func VerifyJWT(tokenString, tokenType string) (*jwt.Token, error) {
	secret := jwtSecret
	if tokenType == TokenTypeRefresh {
		secret = refreshSecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != tokenType {
		return nil, fmt.Errorf("Invalid token type")
	}

	return token, nil
}
