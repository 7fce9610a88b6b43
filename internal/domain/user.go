package domain

import (
	"time"

	"github.com/google/uuid"
)

// User — пользователь платформы.
type User struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Phone    *string
	// PassHash — bcrypt-хеш пароля, наружу не отдаётся
	PassHash []byte
	Role     UserRole
	// BirthDate — дата рождения для нумерологической совместимости, опционально
	BirthDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRole — роль пользователя.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAgent UserRole = "AGENT"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) String() string {
	return string(r)
}

// ParseUserRole нормализует строку в роль, неизвестная роль даёт RoleUser.
func ParseUserRole(s string) UserRole {
	switch UserRole(s) {
	case RoleAgent:
		return RoleAgent
	case RoleAdmin:
		return RoleAdmin
	}
	return RoleUser
}
