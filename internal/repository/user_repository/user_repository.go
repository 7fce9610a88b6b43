package user_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/repository"
)

type UserRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewUserRepository(db *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// CreateUser — регистрирует нового пользователя.
func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) (uuid.UUID, error) {
	const op = "UserRepository.CreateUser"

	query := `
		INSERT INTO users (email, name, phone, pass_hash, role, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Phone,
		user.PassHash,
		user.Role.String(),
		user.BirthDate,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, repository.ErrUserExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByEmail — находит пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const op = "UserRepository.GetByEmail"

	query := `
		SELECT user_id, email, name, phone, pass_hash, role, birth_date, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u domain.User
	var roleStr string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.PassHash, &roleStr, &u.BirthDate, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u.Role = domain.ParseUserRole(roleStr)
	return u, nil
}

// GetByID — находит пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const op = "UserRepository.GetByID"

	query := `
		SELECT user_id, email, name, phone, pass_hash, role, birth_date, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var u domain.User
	var roleStr string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.PassHash, &roleStr, &u.BirthDate, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u.Role = domain.ParseUserRole(roleStr)
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
