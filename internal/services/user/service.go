package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/lib/jwt"
	"dharma_realty/internal/lib/logger/sl"
	"dharma_realty/internal/repository"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type Service struct {
	log      *slog.Logger
	repo     UserRepository
	secret   string
	tokenTTL time.Duration
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func New(log *slog.Logger, repo UserRepository, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Register — регистрирует пользователя с bcrypt-хешем пароля.
func (s *Service) Register(ctx context.Context, email, name, password string, phone *string, role domain.UserRole, birthDate *time.Time) (uuid.UUID, error) {
	const op = "user.Service.Register"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateUser(ctx, domain.User{
		Email:     email,
		Name:      name,
		Phone:     phone,
		PassHash:  passHash,
		Role:      role,
		BirthDate: birthDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			log.Warn("user already exists")
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to create user", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", id.String()))
	return id, nil
}

// Login — проверяет учётные данные и выдаёт токен доступа.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "user.Service.Login"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Warn("user not found")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Warn("invalid password")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(user, s.secret, s.tokenTTL)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return token, nil
}

// GetUser — профиль пользователя по идентификатору.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const op = "user.Service.GetUser"

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
