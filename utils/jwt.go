package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback, overridden by .env in deployments.
		secret = "OrderingSystemDevSecret"
	}
	jwtSecret = []byte(secret)
}

type StaffClaims struct {
	StaffID uint   `json:"staff_id"`
	Account string `json:"account"`
	Class   string `json:"class"`
	jwt.RegisteredClaims
}

func GenerateToken(staffID uint, account, class string) (string, error) {
	claims := &StaffClaims{
		StaffID: staffID,
		Account: account,
		Class:   class,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "ordering-system",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*StaffClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, errors.New("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
