package subscription

// PostTopic - канал событий о публикации/изменении/удалении постов.
const PostTopic = "POST"

// CommentTopic возвращает канал событий по комментариям конкретного поста.
func CommentTopic(postID string) string {
	return "COMMENT " + postID
}
