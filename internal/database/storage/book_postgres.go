package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/GoArmGo/LibraryApp/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// BookStorage реализует интерфейс ports.BookStorage с использованием GORM.
type BookStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewBookStorage создает новый экземпляр BookStorage.
func NewBookStorage(db *gorm.DB, logger *slog.Logger) *BookStorage {
	return &BookStorage{db: db, logger: logger}
}

// GetBookByID получает книгу по ее идентификатору.
func (s *BookStorage) GetBookByID(ctx context.Context, id int64) (*domain.Book, error) {
	var book domain.Book
	result := s.db.WithContext(ctx).First(&book, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("book not found")
		}
		return nil, fmt.Errorf("select book by id: %w", result.Error)
	}
	return &book, nil
}

// GetBookByTitleAndAuthor получает книгу по натуральному ключу (title, author).
func (s *BookStorage) GetBookByTitleAndAuthor(ctx context.Context, title, author string) (*domain.Book, error) {
	var book domain.Book
	result := s.db.WithContext(ctx).Where("title = ? AND author = ?", title, author).First(&book)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("book not found")
		}
		return nil, fmt.Errorf("select book by title and author: %w", result.Error)
	}
	return &book, nil
}

// ListBooks возвращает все книги в порядке хранения.
func (s *BookStorage) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	result := s.db.WithContext(ctx).Order("id").Find(&books)
	if result.Error != nil {
		return nil, fmt.Errorf("select books: %w", result.Error)
	}
	return books, nil
}

// CreateBook вставляет новую книгу и заполняет присвоенный бд идентификатор.
func (s *BookStorage) CreateBook(ctx context.Context, book *domain.Book) error {
	result := s.db.WithContext(ctx).Create(book)
	if result.Error != nil {
		if isPgxUniqueViolation(result.Error) {
			return apperror.Conflict("book already exists")
		}
		s.logger.Error("failed to insert book", "error", result.Error)
		return fmt.Errorf("insert book: %w", result.Error)
	}

	s.logger.Info("book created", "book_id", book.ID)
	return nil
}

// UpdateBook безусловно перезаписывает название и автора книги.
// Дубликат пары (title, author) отклоняется ограничением уникальности в бд.
func (s *BookStorage) UpdateBook(ctx context.Context, book *domain.Book) error {
	result := s.db.WithContext(ctx).Save(book)
	if result.Error != nil {
		if isPgxUniqueViolation(result.Error) {
			return apperror.Conflict("book already exists")
		}
		s.logger.Error("failed to update book", "book_id", book.ID, "error", result.Error)
		return fmt.Errorf("update book: %w", result.Error)
	}
	return nil
}

// DeleteBook удаляет книгу по идентификатору.
// Одалживания, ссылающиеся на нее, не трогаются.
func (s *BookStorage) DeleteBook(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.Book{}, id)
	if result.Error != nil {
		s.logger.Error("failed to delete book", "book_id", id, "error", result.Error)
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("book not found")
	}

	s.logger.Info("book deleted", "book_id", id)
	return nil
}

// isPgxUniqueViolation распознает нарушение уникальности от драйвера pgx,
// который используется gorm-подключением.
func isPgxUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
