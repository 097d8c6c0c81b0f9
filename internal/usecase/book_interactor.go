package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/GoArmGo/LibraryApp/internal/core/ports"
	"github.com/GoArmGo/LibraryApp/internal/domain"
	"github.com/GoArmGo/LibraryApp/internal/dto"
)

// bookUseCase implements BookUseCase
type bookUseCase struct {
	books  ports.BookStorage
	logger *slog.Logger
}

// NewBookUseCase создает новый экземпляр BookUseCase.
func NewBookUseCase(books ports.BookStorage, logger *slog.Logger) BookUseCase {
	return &bookUseCase{books: books, logger: logger}
}

func (uc *bookUseCase) Find(ctx context.Context, id int64) (*dto.BookDto, error) {
	book, err := uc.books.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookDto(book), nil
}

func (uc *bookUseCase) FindAll(ctx context.Context) ([]dto.BookDto, error) {
	books, err := uc.books.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.BookDto, 0, len(books))
	for i := range books {
		views = append(views, *toBookDto(&books[i]))
	}
	return views, nil
}

func (uc *bookUseCase) Create(ctx context.Context, in dto.BookCreateDto) (*dto.BookDto, error) {
	_, err := uc.books.GetBookByTitleAndAuthor(ctx, in.Title, in.Author)
	if err == nil {
		return nil, apperror.Conflict("book already exists")
	}
	if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("check book uniqueness: %w", err)
	}

	book := &domain.Book{
		Title:  in.Title,
		Author: in.Author,
	}
	if err := uc.books.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	uc.logger.Info("book added to catalog", "book_id", book.ID, "title", book.Title)
	return toBookDto(book), nil
}

func (uc *bookUseCase) Update(ctx context.Context, id int64, in dto.BookUpdateDto) (*dto.BookDto, error) {
	book, err := uc.books.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Дубликат пары (title, author) здесь не перепроверяется,
	// его отклонит ограничение уникальности в бд.
	book.Title = in.Title
	book.Author = in.Author

	if err := uc.books.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	return toBookDto(book), nil
}

func (uc *bookUseCase) Delete(ctx context.Context, id int64) error {
	return uc.books.DeleteBook(ctx, id)
}

func toBookDto(book *domain.Book) *dto.BookDto {
	return &dto.BookDto{
		ID:     book.ID,
		Title:  book.Title,
		Author: book.Author,
	}
}
