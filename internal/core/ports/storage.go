package ports

import (
	"context"

	"github.com/GoArmGo/LibraryApp/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем читателей.
// Реализации возвращают ошибки пакета apperror: NotFound для отсутствующих
// записей, Conflict для нарушения уникальности email.
type UserStorage interface {
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// BookStorage определяет методы для взаимодействия с хранилищем книг.
// Натуральный ключ книги — пара (title, author).
type BookStorage interface {
	GetBookByID(ctx context.Context, id int64) (*domain.Book, error)
	GetBookByTitleAndAuthor(ctx context.Context, title, author string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	CreateBook(ctx context.Context, book *domain.Book) error
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id int64) error
}

// LoanStorage определяет методы для взаимодействия с хранилищем одалживаний.
type LoanStorage interface {
	GetLoanByID(ctx context.Context, id int64) (*domain.Loan, error)
	ListLoans(ctx context.Context) ([]domain.Loan, error)
	CreateLoan(ctx context.Context, loan *domain.Loan) error
	UpdateLoan(ctx context.Context, loan *domain.Loan) error
	DeleteLoan(ctx context.Context, id int64) error

	// HasOpenLoanForBook сообщает, есть ли у книги открытое одалживание
	// (запись с return_date IS NULL).
	HasOpenLoanForBook(ctx context.Context, bookID int64) (bool, error)
}
