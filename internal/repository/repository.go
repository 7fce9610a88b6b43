package repository

import "errors"

// Сентинельные ошибки слоя хранения. Сервисы сопоставляют их
// со своими доменными ошибками через errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrComparisonNotFound = errors.New("comparison not found")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)
