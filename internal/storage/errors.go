package storage

import "errors"

// Ошибки нарушения предусловий мутаций. Текст ошибки уходит клиенту как есть.
// ErrPostNotFound - для чтений и подписок, deletePost и updatePost отвечают своими текстами.
var (
	ErrEmailTaken         = errors.New("Email taken.")
	ErrUserNotFound       = errors.New("User not found")
	ErrPostNotFound       = errors.New("Post not found")
	ErrNoPostExist        = errors.New("No post exist")
	ErrNoPostFound        = errors.New("No post found")
	ErrCommentNotFound    = errors.New("No comment found")
	ErrUserOrPostNotFound = errors.New("User or post might not exist")
)

// IsNotFound сообщает, что ошибка означает отсутствие связанной записи.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPostNotFound) ||
		errors.Is(err, ErrNoPostExist) ||
		errors.Is(err, ErrNoPostFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrUserOrPostNotFound)
}
