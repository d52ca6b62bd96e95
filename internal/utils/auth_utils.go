package utils

import (
	"fmt"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// CreateJwtToken signs an identity token. Issuance lives in the account
// service; this exists for the messaging core's own tooling and tests.
func CreateJwtToken(id uint, email, firstName, lastName string, secretKey []byte, expiration time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		models.Claims{
			ID:        id,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiration),
			},
		})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func VerifyToken(tokenString string, secretKey []byte) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
