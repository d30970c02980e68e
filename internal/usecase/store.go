package usecase

import (
	"context"
	"time"

	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/google/uuid"
)

// Implemented by repository.PostRepository.
type PostStore interface {
	CreatePost(ctx context.Context, post model.Post) error
	GetPost(ctx context.Context, postId uuid.UUID) (model.Post, error)
	ListPosts(ctx context.Context, offset int, limit int) ([]model.Post, error)
	CountReactions(ctx context.Context, postIds []uuid.UUID) (map[uuid.UUID]model.ReactionCounts, error)
	UpdatePost(ctx context.Context, postId uuid.UUID, patch model.PostUpdateRequest, updatedAt time.Time) error
	DeletePost(ctx context.Context, postId uuid.UUID) error
}

// Implemented by repository.ReactionRepository.
type ReactionStore interface {
	GetReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, error)
	CreateReaction(ctx context.Context, reaction model.Reaction) error
}

// Implemented by repository.ReactionCacheRepository. GetReactions reports
// misses through the bool and never returns an error.
type ReactionCache interface {
	GetReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, bool)
	SetReactions(ctx context.Context, postId uuid.UUID, view model.ReactionView, ttl time.Duration) error
}

// Implemented by repository.UserRepository.
type UserStore interface {
	Register(ctx context.Context, user model.User) error
	CheckUsernameOrEmailUnique(ctx context.Context, username string, email string) (string, string, error)
	GetUserAuth(ctx context.Context, username string) (uuid.UUID, string, error)
	GetUserInfo(ctx context.Context, id uuid.UUID) (model.UserResponse, error)
	SetAuthTokenInCache(ctx context.Context, accessToken string, refreshToken string, userId uuid.UUID) error
	GetAccessTokenInCache(ctx context.Context, userId uuid.UUID) (string, error)
	RemoveAuthToken(ctx context.Context, userId uuid.UUID) error
}
