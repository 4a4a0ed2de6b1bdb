package model

import (
	"fmt"
	"io"
	"strconv"

	"github.com/99designs/gqlgen/graphql"
)

// Модели привязываются к схеме через autobind (см. gqlgen.yml),
// поэтому models_gen.go не генерируется.

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age,omitempty"`
}

type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	AuthorID  string `json:"authorId"`
}

type Comment struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	AuthorID string `json:"authorId"`
	PostID   string `json:"postId"`
}

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age,omitempty"`
}

// UpdateUserInput - age может быть передан как null (сброс возраста),
// поэтому для него используется Omittable: отсутствие поля и null различаются.
type UpdateUserInput struct {
	Name  *string                 `json:"name,omitempty"`
	Email *string                 `json:"email,omitempty"`
	Age   graphql.Omittable[*int] `json:"age,omitempty"`
}

type CreatePostInput struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	Author    string `json:"author"`
}

type UpdatePostInput struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

type CreateCommentInput struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Post   string `json:"post"`
}

type UpdateCommentInput struct {
	Text *string `json:"text,omitempty"`
}

type PostSubscriptionPayload struct {
	Mutation MutationType `json:"mutation"`
	Data     *Post        `json:"data"`
}

type CommentSubscriptionPayload struct {
	Mutation MutationType `json:"mutation"`
	Data     *Comment     `json:"data"`
}

type MutationType string

const (
	MutationTypeCreated MutationType = "CREATED"
	MutationTypeUpdated MutationType = "UPDATED"
	MutationTypeDeleted MutationType = "DELETED"
)

var AllMutationType = []MutationType{
	MutationTypeCreated,
	MutationTypeUpdated,
	MutationTypeDeleted,
}

func (e MutationType) IsValid() bool {
	switch e {
	case MutationTypeCreated, MutationTypeUpdated, MutationTypeDeleted:
		return true
	}
	return false
}

func (e MutationType) String() string {
	return string(e)
}

func (e *MutationType) UnmarshalGQL(v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}

	*e = MutationType(str)
	if !e.IsValid() {
		return fmt.Errorf("%s is not a valid MutationType", str)
	}
	return nil
}

func (e MutationType) MarshalGQL(w io.Writer) {
	fmt.Fprint(w, strconv.Quote(e.String()))
}
