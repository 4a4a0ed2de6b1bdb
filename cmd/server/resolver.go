package main

import (
	"github.com/VitaminP8/blogql/graph"
	"github.com/VitaminP8/blogql/graph/generated"
)

// rootResolver отдает резолверы пакета graph под интерфейсами
// сгенерированной схемы.
type rootResolver struct {
	r *graph.Resolver
}

var _ generated.ResolverRoot = rootResolver{}

func (root rootResolver) Mutation() generated.MutationResolver         { return root.r.Mutation() }
func (root rootResolver) Query() generated.QueryResolver               { return root.r.Query() }
func (root rootResolver) Subscription() generated.SubscriptionResolver { return root.r.Subscription() }
func (root rootResolver) User() generated.UserResolver                 { return root.r.User() }
func (root rootResolver) Post() generated.PostResolver                 { return root.r.Post() }
func (root rootResolver) Comment() generated.CommentResolver           { return root.r.Comment() }
