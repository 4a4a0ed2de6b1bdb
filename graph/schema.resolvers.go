package graph

import (
	"context"
	"errors"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/internal/subscription"
)

var errSubscriptionsDisabled = errors.New("subscriptions are not configured")

// CreateUser is the resolver for the createUser field.
func (r *mutationResolver) CreateUser(ctx context.Context, data model.CreateUserInput) (*model.User, error) {
	return r.UserStore.CreateUser(ctx, data)
}

// DeleteUser is the resolver for the deleteUser field.
func (r *mutationResolver) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	return r.UserStore.DeleteUser(ctx, id)
}

// UpdateUser is the resolver for the updateUser field.
func (r *mutationResolver) UpdateUser(ctx context.Context, id string, data model.UpdateUserInput) (*model.User, error) {
	return r.UserStore.UpdateUser(ctx, id, data)
}

// CreatePost is the resolver for the createPost field.
func (r *mutationResolver) CreatePost(ctx context.Context, data model.CreatePostInput) (*model.Post, error) {
	return r.PostStore.CreatePost(ctx, data)
}

// DeletePost is the resolver for the deletePost field.
func (r *mutationResolver) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	return r.PostStore.DeletePost(ctx, id)
}

// UpdatePost is the resolver for the updatePost field.
func (r *mutationResolver) UpdatePost(ctx context.Context, id string, data model.UpdatePostInput) (*model.Post, error) {
	return r.PostStore.UpdatePost(ctx, id, data)
}

// CreateComment is the resolver for the createComment field.
func (r *mutationResolver) CreateComment(ctx context.Context, data model.CreateCommentInput) (*model.Comment, error) {
	return r.CommentStore.CreateComment(ctx, data)
}

// DeleteComment is the resolver for the deleteComment field.
func (r *mutationResolver) DeleteComment(ctx context.Context, id string) (*model.Comment, error) {
	return r.CommentStore.DeleteComment(ctx, id)
}

// UpdateComment is the resolver for the updateComment field.
func (r *mutationResolver) UpdateComment(ctx context.Context, id string, data model.UpdateCommentInput) (*model.Comment, error) {
	return r.CommentStore.UpdateComment(ctx, id, data)
}

// Users is the resolver for the users field.
func (r *queryResolver) Users(ctx context.Context) ([]*model.User, error) {
	return r.UserStore.GetAllUsers()
}

// Posts is the resolver for the posts field.
func (r *queryResolver) Posts(ctx context.Context) ([]*model.Post, error) {
	return r.PostStore.GetAllPosts()
}

// Comments is the resolver for the comments field.
func (r *queryResolver) Comments(ctx context.Context) ([]*model.Comment, error) {
	return r.CommentStore.GetAllComments()
}

// Post is the resolver for the post field.
func (r *subscriptionResolver) Post(ctx context.Context) (<-chan *model.PostSubscriptionPayload, error) {
	if r.SubscriptionManager == nil {
		return nil, errSubscriptionsDisabled
	}

	return forward[*model.PostSubscriptionPayload](ctx, r.Resolver, subscription.PostTopic), nil
}

// Comment is the resolver for the comment field.
func (r *subscriptionResolver) Comment(ctx context.Context, postID string) (<-chan *model.CommentSubscriptionPayload, error) {
	if r.SubscriptionManager == nil {
		return nil, errSubscriptionsDisabled
	}

	// подписаться можно только на комментарии опубликованного поста
	post, err := r.PostStore.GetPostById(postID)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, storage.ErrPostNotFound
	}

	return forward[*model.CommentSubscriptionPayload](ctx, r.Resolver, subscription.CommentTopic(postID)), nil
}

// Posts is the resolver for the posts field.
func (r *userResolver) Posts(ctx context.Context, obj *model.User) ([]*model.Post, error) {
	return r.PostStore.GetPostsByAuthor(obj.ID)
}

// Comments is the resolver for the comments field.
func (r *userResolver) Comments(ctx context.Context, obj *model.User) ([]*model.Comment, error) {
	return r.CommentStore.GetCommentsByAuthor(obj.ID)
}

// Author is the resolver for the author field.
func (r *postResolver) Author(ctx context.Context, obj *model.Post) (*model.User, error) {
	return r.UserStore.GetUserById(obj.AuthorID)
}

// Comments is the resolver for the comments field.
func (r *postResolver) Comments(ctx context.Context, obj *model.Post) ([]*model.Comment, error) {
	return r.CommentStore.GetCommentsByPost(obj.ID)
}

// Author is the resolver for the author field.
func (r *commentResolver) Author(ctx context.Context, obj *model.Comment) (*model.User, error) {
	return r.UserStore.GetUserById(obj.AuthorID)
}

// Post is the resolver for the post field.
func (r *commentResolver) Post(ctx context.Context, obj *model.Comment) (*model.Post, error) {
	return r.PostStore.GetPostById(obj.PostID)
}

// Mutation returns the mutation resolver.
func (r *Resolver) Mutation() *mutationResolver { return &mutationResolver{r} }

// Query returns the query resolver.
func (r *Resolver) Query() *queryResolver { return &queryResolver{r} }

// Subscription returns the subscription resolver.
func (r *Resolver) Subscription() *subscriptionResolver { return &subscriptionResolver{r} }

// User returns the User field resolver.
func (r *Resolver) User() *userResolver { return &userResolver{r} }

// Post returns the Post field resolver.
func (r *Resolver) Post() *postResolver { return &postResolver{r} }

// Comment returns the Comment field resolver.
func (r *Resolver) Comment() *commentResolver { return &commentResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
type postResolver struct{ *Resolver }
type commentResolver struct{ *Resolver }
