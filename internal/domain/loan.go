package domain

import "time"

// Loan представляет факт выдачи книги читателю,
// соответствует таблице loans в бд.
// ReturnDate == nil означает, что книга еще не возвращена (одалживание открыто).
// Ссылки на пользователя и книгу слабые: удаление пользователя или книги
// не трогает связанные одалживания.
type Loan struct {
	ID         int64      `json:"id" db:"id" gorm:"primaryKey"`
	UserID     int64      `json:"user_id" db:"user_id"`
	BookID     int64      `json:"book_id" db:"book_id"`
	LoanDate   time.Time  `json:"loan_date" db:"loan_date"`
	ReturnDate *time.Time `json:"return_date" db:"return_date"`
}

func (Loan) TableName() string {
	return "loans"
}

// Open сообщает, открыто ли одалживание (книга на руках).
func (l Loan) Open() bool {
	return l.ReturnDate == nil
}
