package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/GoArmGo/LibraryApp/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pgUniqueViolation — код ошибки PostgreSQL для нарушения уникальности.
const pgUniqueViolation = "23505"

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage.
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// GetUserByID получает читателя по его идентификатору.
func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &user, nil
}

// GetUserByEmail получает читателя по email (натуральный ключ).
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &user, nil
}

// ListUsers возвращает всех читателей в порядке хранения.
func (s *UserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// CreateUser вставляет нового читателя и заполняет присвоенный бд идентификатор.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	rows, err := s.db.NamedQueryContext(ctx, `
        INSERT INTO users (name, email, created_at, updated_at)
        VALUES (:name, :email, :created_at, :updated_at)
        RETURNING id
    `, user)
	if err != nil {
		if isPqUniqueViolation(err) {
			return apperror.Conflict("email already exists")
		}
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("insert user: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&user.ID); err != nil {
			return fmt.Errorf("scan inserted user id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return nil
}

// UpdateUser безусловно перезаписывает имя и email читателя.
// Дубликат email все равно будет отклонен ограничением уникальности в бд.
func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	result, err := s.db.NamedExecContext(ctx, `
        UPDATE users
        SET name = :name, email = :email, updated_at = :updated_at
        WHERE id = :id
    `, user)
	if err != nil {
		if isPqUniqueViolation(err) {
			return apperror.Conflict("email already exists")
		}
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}

// DeleteUser удаляет читателя по идентификатору.
// Одалживания, ссылающиеся на него, не трогаются.
func (s *UserStorage) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user not found")
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// isPqUniqueViolation распознает нарушение уникальности от драйвера lib/pq.
func isPqUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
