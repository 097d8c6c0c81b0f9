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

// userUseCase implements UserUseCase
type userUseCase struct {
	users  ports.UserStorage
	logger *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(users ports.UserStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{users: users, logger: logger}
}

func (uc *userUseCase) Find(ctx context.Context, id int64) (*dto.UserDto, error) {
	user, err := uc.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDto(user), nil
}

func (uc *userUseCase) FindAll(ctx context.Context) ([]dto.UserDto, error) {
	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.UserDto, 0, len(users))
	for i := range users {
		views = append(views, *toUserDto(&users[i]))
	}
	return views, nil
}

func (uc *userUseCase) Create(ctx context.Context, in dto.UserCreateDto) (*dto.UserDto, error) {
	// Проверка занятости email до вставки; ограничение уникальности в бд
	// закрывает оставшуюся гонку тем же Conflict.
	_, err := uc.users.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, apperror.Conflict("email already exists")
	}
	if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}

	user := &domain.User{
		Name:  in.Name,
		Email: in.Email,
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return toUserDto(user), nil
}

func (uc *userUseCase) Update(ctx context.Context, id int64, in dto.UserUpdateDto) (*dto.UserDto, error) {
	user, err := uc.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Уникальность email здесь намеренно не перепроверяется (асимметрия
	// с созданием): дубликат отклонит ограничение в бд.
	user.Name = in.Name
	user.Email = in.Email

	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return toUserDto(user), nil
}

func (uc *userUseCase) Delete(ctx context.Context, id int64) error {
	return uc.users.DeleteUser(ctx, id)
}

func toUserDto(user *domain.User) *dto.UserDto {
	return &dto.UserDto{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
