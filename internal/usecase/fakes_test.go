package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/GoArmGo/LibraryApp/internal/domain"
	"github.com/GoArmGo/LibraryApp/internal/messaging/payloads"
)

// Фейковые хранилища в памяти повторяют контракт настоящих:
// NotFound/Conflict через apperror, включая эмуляцию частичного
// уникального индекса на открытые одалживания.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memUserStore struct {
	users  map[int64]domain.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]domain.User), nextID: 1}
}

func (s *memUserStore) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return &user, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (s *memUserStore) ListUsers(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(s.users))
	for id := int64(1); id < s.nextID; id++ {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *memUserStore) CreateUser(_ context.Context, user *domain.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperror.Conflict("email already exists")
		}
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *memUserStore) UpdateUser(_ context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperror.NotFound("user not found")
	}
	for _, existing := range s.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return apperror.Conflict("email already exists")
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memUserStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return apperror.NotFound("user not found")
	}
	delete(s.users, id)
	return nil
}

type memBookStore struct {
	books  map[int64]domain.Book
	nextID int64
}

func newMemBookStore() *memBookStore {
	return &memBookStore{books: make(map[int64]domain.Book), nextID: 1}
}

func (s *memBookStore) GetBookByID(_ context.Context, id int64) (*domain.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, apperror.NotFound("book not found")
	}
	return &book, nil
}

func (s *memBookStore) GetBookByTitleAndAuthor(_ context.Context, title, author string) (*domain.Book, error) {
	for _, book := range s.books {
		if book.Title == title && book.Author == author {
			b := book
			return &b, nil
		}
	}
	return nil, apperror.NotFound("book not found")
}

func (s *memBookStore) ListBooks(_ context.Context) ([]domain.Book, error) {
	books := make([]domain.Book, 0, len(s.books))
	for id := int64(1); id < s.nextID; id++ {
		if book, ok := s.books[id]; ok {
			books = append(books, book)
		}
	}
	return books, nil
}

func (s *memBookStore) CreateBook(_ context.Context, book *domain.Book) error {
	for _, existing := range s.books {
		if existing.Title == book.Title && existing.Author == book.Author {
			return apperror.Conflict("book already exists")
		}
	}
	book.ID = s.nextID
	s.nextID++
	s.books[book.ID] = *book
	return nil
}

func (s *memBookStore) UpdateBook(_ context.Context, book *domain.Book) error {
	if _, ok := s.books[book.ID]; !ok {
		return apperror.NotFound("book not found")
	}
	for _, existing := range s.books {
		if existing.ID != book.ID && existing.Title == book.Title && existing.Author == book.Author {
			return apperror.Conflict("book already exists")
		}
	}
	s.books[book.ID] = *book
	return nil
}

func (s *memBookStore) DeleteBook(_ context.Context, id int64) error {
	if _, ok := s.books[id]; !ok {
		return apperror.NotFound("book not found")
	}
	delete(s.books, id)
	return nil
}

type memLoanStore struct {
	loans  map[int64]domain.Loan
	nextID int64
}

func newMemLoanStore() *memLoanStore {
	return &memLoanStore{loans: make(map[int64]domain.Loan), nextID: 1}
}

func (s *memLoanStore) GetLoanByID(_ context.Context, id int64) (*domain.Loan, error) {
	loan, ok := s.loans[id]
	if !ok {
		return nil, apperror.NotFound("loan not found")
	}
	return &loan, nil
}

func (s *memLoanStore) ListLoans(_ context.Context) ([]domain.Loan, error) {
	loans := make([]domain.Loan, 0, len(s.loans))
	for id := int64(1); id < s.nextID; id++ {
		if loan, ok := s.loans[id]; ok {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

// hasOtherOpenLoan эмулирует частичный уникальный индекс
// loans_open_book_idx из миграций.
func (s *memLoanStore) hasOtherOpenLoan(bookID, excludeLoanID int64) bool {
	for _, loan := range s.loans {
		if loan.ID != excludeLoanID && loan.BookID == bookID && loan.ReturnDate == nil {
			return true
		}
	}
	return false
}

func (s *memLoanStore) CreateLoan(_ context.Context, loan *domain.Loan) error {
	if loan.ReturnDate == nil && s.hasOtherOpenLoan(loan.BookID, 0) {
		return apperror.Conflict("book is already loaned")
	}
	loan.ID = s.nextID
	s.nextID++
	s.loans[loan.ID] = *loan
	return nil
}

func (s *memLoanStore) UpdateLoan(_ context.Context, loan *domain.Loan) error {
	if _, ok := s.loans[loan.ID]; !ok {
		return apperror.NotFound("loan not found")
	}
	if loan.ReturnDate == nil && s.hasOtherOpenLoan(loan.BookID, loan.ID) {
		return apperror.Conflict("book is already loaned")
	}
	s.loans[loan.ID] = *loan
	return nil
}

func (s *memLoanStore) DeleteLoan(_ context.Context, id int64) error {
	if _, ok := s.loans[id]; !ok {
		return apperror.NotFound("loan not found")
	}
	delete(s.loans, id)
	return nil
}

func (s *memLoanStore) HasOpenLoanForBook(_ context.Context, bookID int64) (bool, error) {
	return s.hasOtherOpenLoan(bookID, 0), nil
}

// capturingPublisher собирает опубликованные события для проверок.
type capturingPublisher struct {
	published []payloads.LoanEventPayload
}

func (p *capturingPublisher) PublishLoanEvent(_ context.Context, payload payloads.LoanEventPayload) error {
	p.published = append(p.published, payload)
	return nil
}
