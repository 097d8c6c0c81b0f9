package domain

import "time"

// User представляет читателя библиотеки.
// Соответствует таблице 'users' в базе данных.
// Email уникален и служит натуральным ключом при создании одалживаний.
type User struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
