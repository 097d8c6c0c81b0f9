package domain

import "time"

// Book представляет книгу в каталоге библиотеки,
// соответствует таблице books в бд.
// Пара (title, author) уникальна.
type Book struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
