package sqlite

import (
	"fmt"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/models"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// MemoryDSN - база живет только в памяти процесса
const MemoryDSN = ":memory:"

type DB struct {
	conn  *gorm.DB
	newID func() string
}

// Open подключается к sqlite и выполняет миграции.
func Open(dsn string) (*DB, error) {
	conn, err := gorm.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// для :memory: каждое новое соединение - это отдельная пустая база,
	// поэтому держим ровно одно (заодно это сериализует транзакции)
	conn.DB().SetMaxOpenConns(1)
	conn.LogMode(false)

	err = conn.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}).Error
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &DB{conn: conn, newID: uuid.NewString}, nil
}

// Close закрывает соединение с базой данных
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}

	err := db.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}
	return nil
}

// Load записывает фикстуру в базу одной транзакцией.
func (db *DB) Load(f storage.Fixture) error {
	_, err := db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		for _, u := range f.Users {
			if err := tx.Create(toUserRecord(u)).Error; err != nil {
				return nil, fmt.Errorf("could not seed user %s: %w", u.ID, err)
			}
		}
		for _, p := range f.Posts {
			if err := tx.Create(toPostRecord(p)).Error; err != nil {
				return nil, fmt.Errorf("could not seed post %s: %w", p.ID, err)
			}
		}
		for _, c := range f.Comments {
			if err := tx.Create(toCommentRecord(c)).Error; err != nil {
				return nil, fmt.Errorf("could not seed comment %s: %w", c.ID, err)
			}
		}
		return nil, nil
	})
	return err
}

// mutate выполняет fn в транзакции. События возвращаются только после коммита.
func (db *DB) mutate(fn func(tx *gorm.DB) ([]storage.Event, error)) (events []storage.Event, err error) {
	tx := db.conn.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	events, err = fn(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	return events, nil
}

func count(tx *gorm.DB, value interface{}, query string, args ...interface{}) (int, error) {
	var n int
	err := tx.Model(value).Where(query, args...).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("could not count records: %w", err)
	}
	return n, nil
}

func toUserRecord(u *model.User) *models.User {
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email, Age: u.Age}
}

func toPostRecord(p *model.Post) *models.Post {
	return &models.Post{ID: p.ID, Title: p.Title, Body: p.Body, Published: p.Published, AuthorID: p.AuthorID}
}

func toCommentRecord(c *model.Comment) *models.Comment {
	return &models.Comment{ID: c.ID, Text: c.Text, AuthorID: c.AuthorID, PostID: c.PostID}
}

func fromUserRecord(u *models.User) *model.User {
	return &model.User{ID: u.ID, Name: u.Name, Email: u.Email, Age: u.Age}
}

func fromPostRecord(p *models.Post) *model.Post {
	return &model.Post{ID: p.ID, Title: p.Title, Body: p.Body, Published: p.Published, AuthorID: p.AuthorID}
}

func fromCommentRecord(c *models.Comment) *model.Comment {
	return &model.Comment{ID: c.ID, Text: c.Text, AuthorID: c.AuthorID, PostID: c.PostID}
}
