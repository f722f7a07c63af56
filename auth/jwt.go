package auth

import (
	"dashboard/model"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer     = "index-dashboard"
	CookieName = "auth_token"
	TokenTTL   = 12 * time.Hour
)

var SecretKey = []byte("")

type Claims struct {
	User model.UserDto `json:"user"`
	jwt.RegisteredClaims
}

func GenerateToken(user model.UserDto) (string, error) {
	now := time.Now()

	claims := &Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.Username,
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(SecretKey)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return SecretKey, nil
	}, jwt.WithIssuer(Issuer))

	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Subject != claims.User.Username {
		return nil, fmt.Errorf("subject mismatch: identity integrity compromised")
	}

	return claims, nil
}
