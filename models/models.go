package models

import "time"

// Записи sqlite-хранилища. ID - UUID строкой, как и в in-memory базе.

type User struct {
	ID        string `gorm:"primary_key"`
	Name      string
	Email     string `gorm:"unique"`
	Age       *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Post struct {
	ID        string `gorm:"primary_key"`
	Title     string
	Body      string
	Published bool
	AuthorID  string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        string `gorm:"primary_key"`
	Text      string
	AuthorID  string `gorm:"index"`
	PostID    string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
