package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/GoArmGo/LibraryApp/internal/core/ports"
	"github.com/GoArmGo/LibraryApp/internal/domain"
	"github.com/GoArmGo/LibraryApp/internal/dto"
	"github.com/GoArmGo/LibraryApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// loanUseCase implements LoanUseCase
type loanUseCase struct {
	loans     ports.LoanStorage
	users     ports.UserStorage
	books     ports.BookStorage
	publisher ports.LoanEventPublisher // nil, если публикация событий выключена
	logger    *slog.Logger
}

// NewLoanUseCase создает новый экземпляр LoanUseCase.
// publisher может быть nil: тогда события одалживаний не публикуются.
func NewLoanUseCase(
	loans ports.LoanStorage,
	users ports.UserStorage,
	books ports.BookStorage,
	publisher ports.LoanEventPublisher,
	logger *slog.Logger,
) LoanUseCase {
	return &loanUseCase{
		loans:     loans,
		users:     users,
		books:     books,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *loanUseCase) Find(ctx context.Context, id int64) (*dto.LoanDto, error) {
	loan, err := uc.loans.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.assembleLoanDto(ctx, loan)
}

func (uc *loanUseCase) FindAll(ctx context.Context) ([]dto.LoanDto, error) {
	loans, err := uc.loans.ListLoans(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.LoanDto, 0, len(loans))
	for i := range loans {
		view, err := uc.assembleLoanDto(ctx, &loans[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (uc *loanUseCase) Create(ctx context.Context, in dto.LoanCreateDto) (*dto.LoanDto, error) {
	// UserName из входных данных не используется: читатель разрешается
	// только по email и неявно не создается.
	user, err := uc.users.GetUserByEmail(ctx, in.UserEmail)
	if err != nil {
		return nil, err
	}

	book, err := uc.books.GetBookByTitleAndAuthor(ctx, in.BookTitle, in.BookAuthor)
	if err != nil {
		return nil, err
	}

	open, err := uc.loans.HasOpenLoanForBook(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("check open loan for book: %w", err)
	}
	if open {
		return nil, apperror.Conflict("book is already loaned")
	}

	loan := &domain.Loan{
		UserID:   user.ID,
		BookID:   book.ID,
		LoanDate: time.Now(),
	}
	if err := uc.loans.CreateLoan(ctx, loan); err != nil {
		return nil, err
	}

	uc.publishLoanEvent(ctx, payloads.EventTypeLoanCreated, loan)

	return &dto.LoanDto{
		ID:         loan.ID,
		User:       toUserDto(user),
		Book:       toBookDto(book),
		LoanDate:   loan.LoanDate,
		ReturnDate: loan.ReturnDate,
	}, nil
}

func (uc *loanUseCase) Update(ctx context.Context, id int64, in dto.LoanUpdateDto) (*dto.LoanDto, error) {
	loan, err := uc.loans.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.UserID != nil {
		if _, err := uc.users.GetUserByID(ctx, *in.UserID); err != nil {
			return nil, err
		}
		loan.UserID = *in.UserID
	}
	if in.BookID != nil {
		if _, err := uc.books.GetBookByID(ctx, *in.BookID); err != nil {
			return nil, err
		}
		loan.BookID = *in.BookID
	}
	if in.LoanDate != nil {
		loan.LoanDate = *in.LoanDate
	}
	if in.ReturnDate != nil {
		loan.ReturnDate = in.ReturnDate
	}

	if err := uc.loans.UpdateLoan(ctx, loan); err != nil {
		return nil, err
	}
	return uc.assembleLoanDto(ctx, loan)
}

func (uc *loanUseCase) ReturnLoan(ctx context.Context, id int64) (*dto.LoanDto, error) {
	loan, err := uc.loans.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Дата возврата выставляется безусловно: повторный возврат
	// не ошибка, он лишь перештамповывает время.
	now := time.Now()
	loan.ReturnDate = &now

	if err := uc.loans.UpdateLoan(ctx, loan); err != nil {
		return nil, err
	}

	uc.publishLoanEvent(ctx, payloads.EventTypeLoanReturned, loan)

	return uc.assembleLoanDto(ctx, loan)
}

func (uc *loanUseCase) Delete(ctx context.Context, id int64) error {
	return uc.loans.DeleteLoan(ctx, id)
}

// assembleLoanDto собирает денормализованное представление одалживания.
// Удаленный читатель или книга встраиваются как null, чтение не падает.
func (uc *loanUseCase) assembleLoanDto(ctx context.Context, loan *domain.Loan) (*dto.LoanDto, error) {
	view := &dto.LoanDto{
		ID:         loan.ID,
		LoanDate:   loan.LoanDate,
		ReturnDate: loan.ReturnDate,
	}

	user, err := uc.users.GetUserByID(ctx, loan.UserID)
	switch {
	case err == nil:
		view.User = toUserDto(user)
	case apperror.IsNotFound(err):
		uc.logger.Warn("loan references missing user", "loan_id", loan.ID, "user_id", loan.UserID)
	default:
		return nil, fmt.Errorf("resolve loan user: %w", err)
	}

	book, err := uc.books.GetBookByID(ctx, loan.BookID)
	switch {
	case err == nil:
		view.Book = toBookDto(book)
	case apperror.IsNotFound(err):
		uc.logger.Warn("loan references missing book", "loan_id", loan.ID, "book_id", loan.BookID)
	default:
		return nil, fmt.Errorf("resolve loan book: %w", err)
	}

	return view, nil
}

// publishLoanEvent публикует событие одалживания, если публикация включена.
// Ошибка публикации не проваливает запрос: запись в бд уже состоялась.
func (uc *loanUseCase) publishLoanEvent(ctx context.Context, eventType string, loan *domain.Loan) {
	if uc.publisher == nil {
		return
	}

	payload := payloads.LoanEventPayload{
		EventID:    uuid.New(),
		Type:       eventType,
		LoanID:     loan.ID,
		UserID:     loan.UserID,
		BookID:     loan.BookID,
		OccurredAt: time.Now(),
	}
	if err := uc.publisher.PublishLoanEvent(ctx, payload); err != nil {
		uc.logger.Warn("failed to publish loan event",
			"type", eventType,
			"loan_id", loan.ID,
			"error", err,
		)
	}
}
