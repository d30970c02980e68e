package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewReactionAggregatorDisablesCacheWithoutClient(t *testing.T) {
	aggregator := NewReactionAggregator(&fakeReactionStore{}, nil, true, zap.NewNop())
	require.False(t, aggregator.UseCache)

	aggregator = NewReactionAggregator(&fakeReactionStore{}, newFakeReactionCache(), false, zap.NewNop())
	require.False(t, aggregator.UseCache)

	aggregator = NewReactionAggregator(&fakeReactionStore{}, newFakeReactionCache(), true, zap.NewNop())
	require.True(t, aggregator.UseCache)
	require.Equal(t, constant.REACTION_CACHE_TTL, aggregator.CacheTTL)
}

func TestLoadReactions(t *testing.T) {
	ctx := context.Background()
	postId := uuid.New()
	storedUser := uuid.New()
	cachedUser := uuid.New()

	store := &fakeReactionStore{reactions: []model.Reaction{
		{PostId: postId, UserId: storedUser, Kind: model.ReactionLike},
	}}

	t.Run("cache hit skips the store", func(t *testing.T) {
		cache := newFakeReactionCache()
		cache.entries[postId] = model.ReactionView{model.ReactionDislike: model.UserSet{cachedUser: {}}}

		aggregator := NewReactionAggregator(store, cache, true, zap.NewNop())
		reads := store.reads

		view, err := aggregator.LoadReactions(ctx, postId)
		require.NoError(t, err)
		require.Equal(t, reads, store.reads)
		require.True(t, view.HasUser(cachedUser))
		require.False(t, view.HasUser(storedUser))
		require.NotNil(t, view[model.ReactionLike])
	})

	t.Run("miss reads the store without writing back", func(t *testing.T) {
		cache := newFakeReactionCache()
		aggregator := NewReactionAggregator(store, cache, true, zap.NewNop())

		view, err := aggregator.LoadReactions(ctx, postId)
		require.NoError(t, err)
		require.True(t, view.HasUser(storedUser))
		require.Zero(t, cache.writes)
	})

	t.Run("disabled cache is never read", func(t *testing.T) {
		cache := newFakeReactionCache()
		cache.entries[postId] = model.ReactionView{model.ReactionDislike: model.UserSet{cachedUser: {}}}
		aggregator := NewReactionAggregator(store, cache, false, zap.NewNop())

		view, err := aggregator.LoadReactions(ctx, postId)
		require.NoError(t, err)
		require.False(t, view.HasUser(cachedUser))
		require.True(t, view.HasUser(storedUser))
	})

	t.Run("store failure is returned", func(t *testing.T) {
		aggregator := NewReactionAggregator(&fakeReactionStore{getErr: errStoreDown}, nil, false, zap.NewNop())

		_, err := aggregator.LoadReactions(ctx, postId)
		require.ErrorIs(t, err, errStoreDown)
	})
}

func TestAddReaction(t *testing.T) {
	ctx := context.Background()
	postId := uuid.New()
	userId := uuid.New()

	t.Run("adds the user to the chosen kind", func(t *testing.T) {
		store := &fakeReactionStore{}
		aggregator := NewReactionAggregator(store, nil, false, zap.NewNop())

		view, err := aggregator.AddReaction(ctx, postId, userId, model.ReactionDislike, nil)
		require.NoError(t, err)
		require.Contains(t, view[model.ReactionDislike], userId)
		require.Empty(t, view[model.ReactionLike])

		require.Len(t, store.reactions, 1)
		require.Equal(t, model.ReactionDislike, store.reactions[0].Kind)
		require.Equal(t, postId, store.reactions[0].PostId)
		require.False(t, store.reactions[0].CreatedAt.IsZero())
	})

	t.Run("user in any kind is rejected before the store", func(t *testing.T) {
		store := &fakeReactionStore{}
		aggregator := NewReactionAggregator(store, nil, false, zap.NewNop())

		view := model.NewReactionView()
		view.Add(model.ReactionLike, userId)

		_, err := aggregator.AddReaction(ctx, postId, userId, model.ReactionDislike, view)
		require.ErrorIs(t, err, model.ErrAlreadyReacted)
		require.Empty(t, store.reactions)
	})

	t.Run("store conflict is passed through", func(t *testing.T) {
		store := &fakeReactionStore{createErr: model.ErrAlreadyReacted}
		aggregator := NewReactionAggregator(store, nil, false, zap.NewNop())

		view, err := aggregator.AddReaction(ctx, postId, userId, model.ReactionLike, model.NewReactionView())
		require.ErrorIs(t, err, model.ErrAlreadyReacted)
		require.False(t, view.HasUser(userId))
	})
}

func TestSaveReactions(t *testing.T) {
	ctx := context.Background()
	postId := uuid.New()

	view := model.NewReactionView()
	view.Add(model.ReactionLike, uuid.New())

	t.Run("writes with the configured ttl", func(t *testing.T) {
		cache := newFakeReactionCache()
		aggregator := NewReactionAggregator(&fakeReactionStore{}, cache, true, zap.NewNop())

		aggregator.SaveReactions(ctx, postId, view)
		require.Equal(t, view, cache.entries[postId])
		require.Equal(t, constant.REACTION_CACHE_TTL, cache.ttls[postId])
	})

	t.Run("cache failure is swallowed", func(t *testing.T) {
		cache := newFakeReactionCache()
		cache.setErr = errors.New("redis unavailable")
		aggregator := NewReactionAggregator(&fakeReactionStore{}, cache, true, zap.NewNop())

		require.NotPanics(t, func() {
			aggregator.SaveReactions(ctx, postId, view)
		})
		require.Equal(t, 1, cache.writes)
	})

	t.Run("disabled cache is never written", func(t *testing.T) {
		cache := newFakeReactionCache()
		aggregator := NewReactionAggregator(&fakeReactionStore{}, cache, false, zap.NewNop())

		aggregator.SaveReactions(ctx, postId, view)
		require.Zero(t, cache.writes)
	})
}
