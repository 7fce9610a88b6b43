// Package jwt — выпуск и разбор токенов доступа.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"dharma_realty/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims — полезная нагрузка токена доступа.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   domain.UserRole
}

// NewToken создаёт подписанный HS256-токен для пользователя.
func NewToken(user domain.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role.String(),
		"exp":   time.Now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwt.NewToken: %w", err)
	}

	return signed, nil
}

// Parse проверяет подпись и срок действия токена и возвращает его claims.
func Parse(tokenString, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	uidStr, _ := mapClaims["uid"].(string)
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	email, _ := mapClaims["email"].(string)
	roleStr, _ := mapClaims["role"].(string)

	return Claims{
		UserID: uid,
		Email:  email,
		Role:   domain.ParseUserRole(roleStr),
	}, nil
}
