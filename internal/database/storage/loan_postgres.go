package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/GoArmGo/LibraryApp/internal/domain"
	"gorm.io/gorm"
)

// LoanStorage реализует интерфейс ports.LoanStorage с использованием GORM.
// Инвариант "не более одного открытого одалживания на книгу" держит
// частичный уникальный индекс loans_open_book_idx: нарушение на вставке
// или обновлении превращается в Conflict.
type LoanStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewLoanStorage создает новый экземпляр LoanStorage.
func NewLoanStorage(db *gorm.DB, logger *slog.Logger) *LoanStorage {
	return &LoanStorage{db: db, logger: logger}
}

// GetLoanByID получает одалживание по его идентификатору.
func (s *LoanStorage) GetLoanByID(ctx context.Context, id int64) (*domain.Loan, error) {
	var loan domain.Loan
	result := s.db.WithContext(ctx).First(&loan, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("loan not found")
		}
		return nil, fmt.Errorf("select loan by id: %w", result.Error)
	}
	return &loan, nil
}

// ListLoans возвращает все одалживания в порядке хранения.
func (s *LoanStorage) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	var loans []domain.Loan
	result := s.db.WithContext(ctx).Order("id").Find(&loans)
	if result.Error != nil {
		return nil, fmt.Errorf("select loans: %w", result.Error)
	}
	return loans, nil
}

// CreateLoan вставляет новое одалживание и заполняет присвоенный бд
// идентификатор. Гонка двух одновременных выдач одной книги разрешается
// частичным индексом: проигравшая вставка получает Conflict.
func (s *LoanStorage) CreateLoan(ctx context.Context, loan *domain.Loan) error {
	result := s.db.WithContext(ctx).Create(loan)
	if result.Error != nil {
		if isPgxUniqueViolation(result.Error) {
			return apperror.Conflict("book is already loaned")
		}
		s.logger.Error("failed to insert loan", "error", result.Error)
		return fmt.Errorf("insert loan: %w", result.Error)
	}

	s.logger.Info("loan created", "loan_id", loan.ID, "book_id", loan.BookID, "user_id", loan.UserID)
	return nil
}

// UpdateLoan перезаписывает запись одалживания целиком.
// Перевешивание открытого одалживания на книгу, у которой уже есть
// открытое, отклоняется тем же частичным индексом.
func (s *LoanStorage) UpdateLoan(ctx context.Context, loan *domain.Loan) error {
	result := s.db.WithContext(ctx).Save(loan)
	if result.Error != nil {
		if isPgxUniqueViolation(result.Error) {
			return apperror.Conflict("book is already loaned")
		}
		s.logger.Error("failed to update loan", "loan_id", loan.ID, "error", result.Error)
		return fmt.Errorf("update loan: %w", result.Error)
	}
	return nil
}

// DeleteLoan удаляет одалживание по идентификатору.
func (s *LoanStorage) DeleteLoan(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.Loan{}, id)
	if result.Error != nil {
		s.logger.Error("failed to delete loan", "loan_id", id, "error", result.Error)
		return fmt.Errorf("delete loan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("loan not found")
	}

	s.logger.Info("loan deleted", "loan_id", id)
	return nil
}

// HasOpenLoanForBook сообщает, есть ли у книги открытое одалживание.
func (s *LoanStorage) HasOpenLoanForBook(ctx context.Context, bookID int64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&domain.Loan{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("count open loans for book: %w", result.Error)
	}
	return count > 0, nil
}
