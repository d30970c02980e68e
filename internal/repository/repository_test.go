package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/ferdian3456/postreaction/internal/repository"
	"github.com/ferdian3456/postreaction/tests/integration/setup"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stores struct {
	db    *pgxpool.Pool
	cache *redis.Client
}

func newStores(t *testing.T) *stores {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping repository test in short mode")
	}

	ctx := context.Background()

	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = infra.Terminate(ctx, t)
	})

	require.NoError(t, setup.RunMigration(infra.PgURL, t))

	db, err := pgxpool.New(ctx, infra.PgURL)
	require.NoError(t, err)

	cache := redis.NewClient(&redis.Options{Addr: infra.RedisURL})
	require.NoError(t, cache.Ping(ctx).Err())

	t.Cleanup(func() {
		_ = cache.Close()
		db.Close()
	})

	return &stores{db: db, cache: cache}
}

func (s *stores) insertUser(t *testing.T) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	_, err := s.db.Exec(context.Background(),
		"INSERT INTO users (id, username, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		id, "u"+id.String()[:8], id.String()[:8]+"@example.com", "hash", now, now,
	)
	require.NoError(t, err)

	return id
}

func newPost(ownerId uuid.UUID, title string, createdAt time.Time) model.Post {
	return model.Post{
		Id:        uuid.New(),
		OwnerId:   ownerId,
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestRepositories(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	log := zap.NewNop()

	posts := repository.NewPostRepository(log, s.db)
	reactions := repository.NewReactionRepository(log, s.db)
	cache := repository.NewReactionCacheRepository(log, s.cache)

	owner := s.insertUser(t)
	alice := s.insertUser(t)
	bob := s.insertUser(t)

	base := time.Now().UTC().Truncate(time.Millisecond)
	first := newPost(owner, "first", base)
	second := newPost(owner, "second", base.Add(time.Second))
	require.NoError(t, posts.CreatePost(ctx, second))
	require.NoError(t, posts.CreatePost(ctx, first))

	t.Run("get and list", func(t *testing.T) {
		got, err := posts.GetPost(ctx, first.Id)
		require.NoError(t, err)
		require.Equal(t, "first", got.Title)
		require.Nil(t, got.Description)

		_, err = posts.GetPost(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrPostNotFound)

		page, err := posts.ListPosts(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, page, 2)
		require.Equal(t, first.Id, page[0].Id)
		require.Equal(t, second.Id, page[1].Id)

		page, err = posts.ListPosts(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, page, 1)

		page, err = posts.ListPosts(ctx, 5, 10)
		require.NoError(t, err)
		require.NotNil(t, page)
		require.Empty(t, page)
	})

	t.Run("reactions and counts", func(t *testing.T) {
		require.NoError(t, reactions.CreateReaction(ctx, model.Reaction{UserId: alice, PostId: first.Id, Kind: model.ReactionLike, CreatedAt: base}))
		require.NoError(t, reactions.CreateReaction(ctx, model.Reaction{UserId: bob, PostId: first.Id, Kind: model.ReactionDislike, CreatedAt: base}))

		err := reactions.CreateReaction(ctx, model.Reaction{UserId: alice, PostId: first.Id, Kind: model.ReactionDislike, CreatedAt: base})
		require.ErrorIs(t, err, model.ErrAlreadyReacted)

		err = reactions.CreateReaction(ctx, model.Reaction{UserId: alice, PostId: uuid.New(), Kind: model.ReactionLike, CreatedAt: base})
		require.ErrorIs(t, err, model.ErrPostNotFound)

		view, err := reactions.GetReactions(ctx, first.Id)
		require.NoError(t, err)
		require.Contains(t, view[model.ReactionLike], alice)
		require.Contains(t, view[model.ReactionDislike], bob)

		view, err = reactions.GetReactions(ctx, second.Id)
		require.NoError(t, err)
		require.True(t, view.IsEmpty())
		require.Len(t, view, len(model.ReactionKinds))

		counts, err := posts.CountReactions(ctx, []uuid.UUID{first.Id, second.Id})
		require.NoError(t, err)
		require.Equal(t, model.ReactionCounts{model.ReactionLike: 1, model.ReactionDislike: 1}, counts[first.Id])
		require.Equal(t, model.NewReactionCounts(), counts[second.Id])

		counts, err = posts.CountReactions(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, counts)
	})

	t.Run("unknown stored kind is skipped on read", func(t *testing.T) {
		carol := s.insertUser(t)
		_, err := s.db.Exec(ctx,
			"INSERT INTO reactions (user_id, post_id, kind, created_at) VALUES ($1, $2, $3, $4)",
			carol, second.Id, "love", base,
		)
		require.NoError(t, err)

		view, err := reactions.GetReactions(ctx, second.Id)
		require.NoError(t, err)
		require.False(t, view.HasUser(carol))
		require.Len(t, view, len(model.ReactionKinds))

		counts, err := posts.CountReactions(ctx, []uuid.UUID{second.Id})
		require.NoError(t, err)
		require.Equal(t, model.NewReactionCounts(), counts[second.Id])
	})

	t.Run("update", func(t *testing.T) {
		description := "described"
		updatedAt := base.Add(time.Minute)

		err := posts.UpdatePost(ctx, second.Id, model.PostUpdateRequest{Description: &description}, updatedAt)
		require.NoError(t, err)

		got, err := posts.GetPost(ctx, second.Id)
		require.NoError(t, err)
		require.Equal(t, "second", got.Title)
		require.Equal(t, "described", *got.Description)
		require.True(t, got.UpdatedAt.Equal(updatedAt))

		title := "renamed"
		err = posts.UpdatePost(ctx, uuid.New(), model.PostUpdateRequest{Title: &title}, updatedAt)
		require.ErrorIs(t, err, model.ErrPostNotFound)
	})

	t.Run("delete cascades to reactions", func(t *testing.T) {
		require.NoError(t, posts.DeletePost(ctx, first.Id))
		require.ErrorIs(t, posts.DeletePost(ctx, first.Id), model.ErrPostNotFound)

		var remaining int
		err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM reactions WHERE post_id = $1", first.Id).Scan(&remaining)
		require.NoError(t, err)
		require.Zero(t, remaining)
	})

	t.Run("cache", func(t *testing.T) {
		postId := uuid.New()
		key := repository.ReactionCacheKey(postId)
		require.Equal(t, constant.REACTION_CACHE_NAMESPACE+":"+postId.String(), key)

		_, ok := cache.GetReactions(ctx, postId)
		require.False(t, ok)

		require.NoError(t, cache.SetReactions(ctx, postId, model.NewReactionView(), time.Minute))
		require.Zero(t, s.cache.Exists(ctx, key).Val())

		view := model.NewReactionView()
		view.Add(model.ReactionLike, alice)
		require.NoError(t, cache.SetReactions(ctx, postId, view, constant.REACTION_CACHE_TTL))

		cached, ok := cache.GetReactions(ctx, postId)
		require.True(t, ok)
		require.Equal(t, view, cached)

		ttl := s.cache.TTL(ctx, key).Val()
		require.Greater(t, ttl, time.Duration(0))
		require.LessOrEqual(t, ttl, constant.REACTION_CACHE_TTL)

		require.NoError(t, s.cache.Set(ctx, key, "[1,2", time.Minute).Err())
		_, ok = cache.GetReactions(ctx, postId)
		require.False(t, ok)
	})
}
