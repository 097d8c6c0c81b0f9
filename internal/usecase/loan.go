package usecase

import (
	"context"

	"github.com/GoArmGo/LibraryApp/internal/dto"
)

// LoanUseCase определяет интерфейс бизнес-логики работы с одалживаниями.
// Единственный компонент с межсущностной логикой: разрешает читателя
// по email, книгу по паре (title, author) и следит за тем, чтобы у книги
// было не более одного открытого одалживания.
type LoanUseCase interface {
	// Find возвращает представление одалживания с встроенными
	// представлениями читателя и книги.
	Find(ctx context.Context, id int64) (*dto.LoanDto, error)

	// FindAll возвращает представления всех одалживаний.
	FindAll(ctx context.Context) ([]dto.LoanDto, error)

	// Create выдает книгу читателю: читатель разрешается по email,
	// книга по (title, author). Возвращает NotFound, если кого-то из них
	// нет, и Conflict, если книга уже на руках.
	Create(ctx context.Context, in dto.LoanCreateDto) (*dto.LoanDto, error)

	// Update частично обновляет одалживание: перезаписываются только
	// присутствующие во входных данных поля. Явно переданные userId/bookId
	// обязаны разрешаться, иначе NotFound.
	Update(ctx context.Context, id int64, in dto.LoanUpdateDto) (*dto.LoanDto, error)

	// ReturnLoan фиксирует возврат книги: дата возврата выставляется
	// в текущий момент безусловно, повторный возврат не отклоняется.
	ReturnLoan(ctx context.Context, id int64) (*dto.LoanDto, error)

	// Delete удаляет одалживание.
	Delete(ctx context.Context, id int64) error
}
