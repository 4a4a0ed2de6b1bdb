package storage

import "github.com/VitaminP8/blogql/graph/model"

// Fixture - начальный набор данных для мок-базы.
type Fixture struct {
	Users    []*model.User
	Posts    []*model.Post
	Comments []*model.Comment
}

// Seed возвращает свежую копию демонстрационных данных (каждый вызов - новые указатели).
func Seed() Fixture {
	age := 31

	return Fixture{
		Users: []*model.User{
			{ID: "1", Name: "Anna", Email: "anna@example.com", Age: &age},
			{ID: "2", Name: "Boris", Email: "boris@example.com"},
			{ID: "3", Name: "Vera", Email: "vera@example.com"},
		},
		Posts: []*model.Post{
			{ID: "10", Title: "Getting started with GraphQL", Body: "Schemas, queries and mutations.", Published: true, AuthorID: "1"},
			{ID: "11", Title: "Subscriptions in depth", Body: "Draft about websockets.", Published: false, AuthorID: "1"},
			{ID: "12", Title: "Notes on Go generics", Body: "", Published: true, AuthorID: "2"},
		},
		Comments: []*model.Comment{
			{ID: "100", Text: "Clear and short, thanks!", AuthorID: "3", PostID: "10"},
			{ID: "101", Text: "Glad it helped.", AuthorID: "1", PostID: "10"},
			{ID: "102", Text: "Does this work with unions?", AuthorID: "2", PostID: "11"},
			{ID: "103", Text: "Type parameters finally clicked for me.", AuthorID: "1", PostID: "12"},
		},
	}
}
