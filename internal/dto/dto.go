package dto

import "time"

// UserDto — представление читателя, отдаваемое наружу.
type UserDto struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookDto — представление книги, отдаваемое наружу.
type BookDto struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// LoanDto — представление одалживания с встроенными полными
// представлениями читателя и книги (денормализация на чтении).
// Если читатель или книга были удалены, соответствующая сторона
// отдается как null.
type LoanDto struct {
	ID         int64      `json:"id"`
	User       *UserDto   `json:"user"`
	Book       *BookDto   `json:"book"`
	LoanDate   time.Time  `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// UserCreateDto — входные данные для создания читателя.
type UserCreateDto struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UserUpdateDto — входные данные для обновления читателя.
// Оба поля перезаписываются безусловно.
type UserUpdateDto struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// BookCreateDto — входные данные для создания книги.
type BookCreateDto struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// BookUpdateDto — входные данные для обновления книги.
type BookUpdateDto struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// LoanCreateDto — входные данные для создания одалживания.
// Читатель разрешается по email, книга по паре (title, author).
// UserName принимается для совместимости, но не используется:
// читатель никогда не создается неявно.
type LoanCreateDto struct {
	UserName   string `json:"user_name,omitempty"`
	UserEmail  string `json:"user_email" validate:"required,email"`
	BookTitle  string `json:"book_title" validate:"required"`
	BookAuthor string `json:"book_author" validate:"required"`
}

// LoanUpdateDto — входные данные для частичного обновления одалживания.
// Каждое поле независимо необязательно: отсутствующие поля
// сохраняют значение из бд.
type LoanUpdateDto struct {
	UserID     *int64     `json:"user_id"`
	BookID     *int64     `json:"book_id"`
	LoanDate   *time.Time `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date"`
}
