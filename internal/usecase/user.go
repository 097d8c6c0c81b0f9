package usecase

import (
	"context"

	"github.com/GoArmGo/LibraryApp/internal/dto"
)

// UserUseCase определяет интерфейс бизнес-логики работы с читателями.
type UserUseCase interface {
	// Find возвращает представление читателя по идентификатору.
	Find(ctx context.Context, id int64) (*dto.UserDto, error)

	// FindAll возвращает представления всех читателей в порядке хранения.
	FindAll(ctx context.Context) ([]dto.UserDto, error)

	// Create регистрирует нового читателя.
	// Возвращает Conflict, если email уже занят.
	Create(ctx context.Context, in dto.UserCreateDto) (*dto.UserDto, error)

	// Update безусловно перезаписывает имя и email читателя.
	Update(ctx context.Context, id int64, in dto.UserUpdateDto) (*dto.UserDto, error)

	// Delete удаляет читателя. Его одалживания не трогаются.
	Delete(ctx context.Context, id int64) error
}
