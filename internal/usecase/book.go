package usecase

import (
	"context"

	"github.com/GoArmGo/LibraryApp/internal/dto"
)

// BookUseCase определяет интерфейс бизнес-логики работы с книгами.
type BookUseCase interface {
	// Find возвращает представление книги по идентификатору.
	Find(ctx context.Context, id int64) (*dto.BookDto, error)

	// FindAll возвращает представления всех книг в порядке хранения.
	FindAll(ctx context.Context) ([]dto.BookDto, error)

	// Create добавляет книгу в каталог.
	// Возвращает Conflict, если пара (title, author) уже существует.
	Create(ctx context.Context, in dto.BookCreateDto) (*dto.BookDto, error)

	// Update безусловно перезаписывает название и автора книги.
	Update(ctx context.Context, id int64, in dto.BookUpdateDto) (*dto.BookDto, error)

	// Delete удаляет книгу. Ее одалживания не трогаются.
	Delete(ctx context.Context, id int64) error
}
