package memory

import (
	"sync"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/google/uuid"
)

// DB - мок-база: общие для всех хранилищ срезы пользователей, постов и комментариев.
// Все мутации выполняются под одним мьютексом, поэтому каскадное удаление
// видит согласованное состояние всех трех коллекций.
type DB struct {
	mu       sync.Mutex
	users    []*model.User
	posts    []*model.Post
	comments []*model.Comment
	newID    func() string
}

func NewDB() *DB {
	return &DB{
		newID: uuid.NewString,
	}
}

// NewSeededDB создает базу, заполненную демонстрационными данными.
func NewSeededDB() *DB {
	db := NewDB()
	db.Load(storage.Seed())
	return db
}

// Load заменяет содержимое базы данными фикстуры.
func (db *DB) Load(f storage.Fixture) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.users = append([]*model.User(nil), f.Users...)
	db.posts = append([]*model.Post(nil), f.Posts...)
	db.comments = append([]*model.Comment(nil), f.Comments...)
}

// mutate выполняет fn под блокировкой и возвращает события для публикации.
// Публиковать их нужно уже после снятия блокировки.
func (db *DB) mutate(fn func() ([]storage.Event, error)) ([]storage.Event, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return fn()
}

func (db *DB) userIndex(id string) int {
	for i, u := range db.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) postIndex(id string) int {
	for i, p := range db.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) commentIndex(id string) int {
	for i, c := range db.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) emailTaken(email, exceptID string) bool {
	for _, u := range db.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

// Наружу отдаются копии, чтобы последующие мутации не меняли уже возвращенные объекты.

func cloneUser(u *model.User) *model.User {
	c := *u
	c.Age = copyInt(u.Age)
	return &c
}

func clonePost(p *model.Post) *model.Post {
	c := *p
	return &c
}

func cloneComment(c *model.Comment) *model.Comment {
	cc := *c
	return &cc
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
