package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/GoArmGo/LibraryApp/internal/dto"
	"github.com/GoArmGo/LibraryApp/internal/messaging/payloads"
	"github.com/GoArmGo/LibraryApp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loanFixture struct {
	users     *memUserStore
	books     *memBookStore
	loans     *memLoanStore
	publisher *capturingPublisher

	userUC usecase.UserUseCase
	bookUC usecase.BookUseCase
	loanUC usecase.LoanUseCase
}

func newLoanFixture() *loanFixture {
	f := &loanFixture{
		users:     newMemUserStore(),
		books:     newMemBookStore(),
		loans:     newMemLoanStore(),
		publisher: &capturingPublisher{},
	}
	logger := testLogger()
	f.userUC = usecase.NewUserUseCase(f.users, logger)
	f.bookUC = usecase.NewBookUseCase(f.books, logger)
	f.loanUC = usecase.NewLoanUseCase(f.loans, f.users, f.books, f.publisher, logger)
	return f
}

func (f *loanFixture) mustCreateUser(t *testing.T, name, email string) *dto.UserDto {
	t.Helper()
	user, err := f.userUC.Create(context.Background(), dto.UserCreateDto{Name: name, Email: email})
	require.NoError(t, err)
	return user
}

func (f *loanFixture) mustCreateBook(t *testing.T, title, author string) *dto.BookDto {
	t.Helper()
	book, err := f.bookUC.Create(context.Background(), dto.BookCreateDto{Title: title, Author: author})
	require.NoError(t, err)
	return book
}

func Test_LoanUseCase_Create(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()
	user := f.mustCreateUser(t, "Ann", "ann@x.com")
	book := f.mustCreateBook(t, "Dune", "Herbert")

	loan, err := f.loanUC.Create(ctx, dto.LoanCreateDto{
		UserEmail:  "ann@x.com",
		BookTitle:  "Dune",
		BookAuthor: "Herbert",
	})
	require.NoError(t, err)

	require.NotNil(t, loan.User)
	require.NotNil(t, loan.Book)
	assert.Equal(t, user.ID, loan.User.ID)
	assert.Equal(t, book.ID, loan.Book.ID)
	assert.Nil(t, loan.ReturnDate)
	assert.WithinDuration(t, time.Now(), loan.LoanDate, time.Minute)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, payloads.EventTypeLoanCreated, f.publisher.published[0].Type)
	assert.Equal(t, loan.ID, f.publisher.published[0].LoanID)
}

func Test_LoanUseCase_Create_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		prepare func(t *testing.T, f *loanFixture)
		input   dto.LoanCreateDto
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unknown_user_yields_not_found",
			prepare: func(t *testing.T, f *loanFixture) { f.mustCreateBook(t, "Dune", "Herbert") },
			input:   dto.LoanCreateDto{UserEmail: "ghost@x.com", BookTitle: "Dune", BookAuthor: "Herbert"},
			check:   func(t *testing.T, err error) { assert.True(t, apperror.IsNotFound(err)) },
		},
		{
			name:    "unknown_book_yields_not_found",
			prepare: func(t *testing.T, f *loanFixture) { f.mustCreateUser(t, "Ann", "ann@x.com") },
			input:   dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Ghost", BookAuthor: "Nobody"},
			check:   func(t *testing.T, err error) { assert.True(t, apperror.IsNotFound(err)) },
		},
		{
			name: "open_loan_yields_conflict",
			prepare: func(t *testing.T, f *loanFixture) {
				f.mustCreateUser(t, "Ann", "ann@x.com")
				f.mustCreateUser(t, "Bob", "bob@x.com")
				f.mustCreateBook(t, "Dune", "Herbert")
				_, err := f.loanUC.Create(ctx, dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"})
				require.NoError(t, err)
			},
			input: dto.LoanCreateDto{UserEmail: "bob@x.com", BookTitle: "Dune", BookAuthor: "Herbert"},
			check: func(t *testing.T, err error) { assert.True(t, apperror.IsConflict(err)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLoanFixture()
			tt.prepare(t, f)
			_, err := f.loanUC.Create(ctx, tt.input)
			tt.check(t, err)
		})
	}
}

func Test_LoanUseCase_Create_AfterReturnSucceeds(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()
	f.mustCreateUser(t, "Ann", "ann@x.com")
	f.mustCreateBook(t, "Dune", "Herbert")

	in := dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"}

	first, err := f.loanUC.Create(ctx, in)
	require.NoError(t, err)

	_, err = f.loanUC.Create(ctx, in)
	require.True(t, apperror.IsConflict(err))

	returned, err := f.loanUC.ReturnLoan(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)

	second, err := f.loanUC.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Nil(t, second.ReturnDate)
}

func Test_LoanUseCase_ReturnLoan_DoubleReturnDoesNotFail(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()
	f.mustCreateUser(t, "Ann", "ann@x.com")
	f.mustCreateBook(t, "Dune", "Herbert")

	loan, err := f.loanUC.Create(ctx, dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"})
	require.NoError(t, err)

	first, err := f.loanUC.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ReturnDate)

	second, err := f.loanUC.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err, "second return must not fail")
	require.NotNil(t, second.ReturnDate)
	assert.False(t, second.ReturnDate.Before(*first.ReturnDate))

	_, err = f.loanUC.ReturnLoan(ctx, 999)
	assert.True(t, apperror.IsNotFound(err))

	// loan.created + два loan.returned
	require.Len(t, f.publisher.published, 3)
	assert.Equal(t, payloads.EventTypeLoanReturned, f.publisher.published[1].Type)
	assert.Equal(t, payloads.EventTypeLoanReturned, f.publisher.published[2].Type)
}

func Test_LoanUseCase_Update_Partial(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()
	ann := f.mustCreateUser(t, "Ann", "ann@x.com")
	bob := f.mustCreateUser(t, "Bob", "bob@x.com")
	f.mustCreateBook(t, "Dune", "Herbert")

	loan, err := f.loanUC.Create(ctx, dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"})
	require.NoError(t, err)

	t.Run("only_return_date_changes", func(t *testing.T) {
		returnDate := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		updated, err := f.loanUC.Update(ctx, loan.ID, dto.LoanUpdateDto{ReturnDate: &returnDate})
		require.NoError(t, err)

		require.NotNil(t, updated.ReturnDate)
		assert.True(t, updated.ReturnDate.Equal(returnDate))
		require.NotNil(t, updated.User)
		assert.Equal(t, ann.ID, updated.User.ID, "user must be unchanged")
		assert.True(t, updated.LoanDate.Equal(loan.LoanDate), "loan date must be unchanged")
	})

	t.Run("only_user_changes", func(t *testing.T) {
		updated, err := f.loanUC.Update(ctx, loan.ID, dto.LoanUpdateDto{UserID: &bob.ID})
		require.NoError(t, err)

		require.NotNil(t, updated.User)
		assert.Equal(t, bob.ID, updated.User.ID)
		require.NotNil(t, updated.ReturnDate, "return date from previous update must be kept")
		assert.True(t, updated.LoanDate.Equal(loan.LoanDate))
	})

	t.Run("unknown_user_id_yields_not_found", func(t *testing.T) {
		missing := int64(999)
		_, err := f.loanUC.Update(ctx, loan.ID, dto.LoanUpdateDto{UserID: &missing})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("unknown_loan_yields_not_found", func(t *testing.T) {
		_, err := f.loanUC.Update(ctx, 999, dto.LoanUpdateDto{})
		assert.True(t, apperror.IsNotFound(err))
	})
}

func Test_LoanUseCase_Update_ReassignToLoanedBookConflicts(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()
	f.mustCreateUser(t, "Ann", "ann@x.com")
	f.mustCreateUser(t, "Bob", "bob@x.com")
	dune := f.mustCreateBook(t, "Dune", "Herbert")
	f.mustCreateBook(t, "Solaris", "Lem")

	_, err := f.loanUC.Create(ctx, dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"})
	require.NoError(t, err)

	solarisLoan, err := f.loanUC.Create(ctx, dto.LoanCreateDto{UserEmail: "bob@x.com", BookTitle: "Solaris", BookAuthor: "Lem"})
	require.NoError(t, err)

	// Перевесить открытое одалживание на уже выданную книгу нельзя.
	_, err = f.loanUC.Update(ctx, solarisLoan.ID, dto.LoanUpdateDto{BookID: &dune.ID})
	assert.True(t, apperror.IsConflict(err))
}

func Test_LoanUseCase_OrphanedReferences(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()
	user := f.mustCreateUser(t, "Ann", "ann@x.com")
	book := f.mustCreateBook(t, "Dune", "Herbert")

	loan, err := f.loanUC.Create(ctx, dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"})
	require.NoError(t, err)

	require.NoError(t, f.userUC.Delete(ctx, user.ID))
	require.NoError(t, f.bookUC.Delete(ctx, book.ID))

	// Одалживание остается читаемым, удаленные стороны отдаются как null.
	found, err := f.loanUC.Find(ctx, loan.ID)
	require.NoError(t, err)
	assert.Nil(t, found.User)
	assert.Nil(t, found.Book)
}

func Test_LoanUseCase_EndToEndScenario(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture()

	_, err := f.userUC.Create(ctx, dto.UserCreateDto{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	_, err = f.bookUC.Create(ctx, dto.BookCreateDto{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	in := dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"}

	loan, err := f.loanUC.Create(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, loan.ReturnDate)

	_, err = f.loanUC.Create(ctx, in)
	require.True(t, apperror.IsConflict(err))

	returned, err := f.loanUC.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)

	_, err = f.loanUC.Create(ctx, in)
	require.NoError(t, err)
}

func Test_LoanUseCase_WithoutPublisher(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	books := newMemBookStore()
	loans := newMemLoanStore()
	logger := testLogger()

	userUC := usecase.NewUserUseCase(users, logger)
	bookUC := usecase.NewBookUseCase(books, logger)
	loanUC := usecase.NewLoanUseCase(loans, users, books, nil, logger)

	_, err := userUC.Create(ctx, dto.UserCreateDto{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	_, err = bookUC.Create(ctx, dto.BookCreateDto{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	loan, err := loanUC.Create(ctx, dto.LoanCreateDto{UserEmail: "ann@x.com", BookTitle: "Dune", BookAuthor: "Herbert"})
	require.NoError(t, err)

	_, err = loanUC.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err)
}
