package usecase

import (
	"context"
	"time"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/ferdian3456/postreaction/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReactionAggregator reconciles the cached reaction view with the
// relational store. The store always wins; the cache is best-effort.
type ReactionAggregator struct {
	ReactionStore ReactionStore
	Cache         ReactionCache
	UseCache      bool
	CacheTTL      time.Duration
	Log           *zap.Logger
}

func NewReactionAggregator(reactionStore ReactionStore, cache ReactionCache, useCache bool, zap *zap.Logger) *ReactionAggregator {
	return &ReactionAggregator{
		ReactionStore: reactionStore,
		Cache:         cache,
		UseCache:      useCache && cache != nil,
		CacheTTL:      constant.REACTION_CACHE_TTL,
		Log:           zap,
	}
}

func (aggregator *ReactionAggregator) GetReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, error) {
	view, err := aggregator.ReactionStore.GetReactions(ctx, postId)
	if err != nil {
		return nil, err
	}

	return view.Normalize(), nil
}

// LoadReactions prefers the cache. A miss falls through to the store
// without writing the result back.
func (aggregator *ReactionAggregator) LoadReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, error) {
	if aggregator.UseCache {
		view, ok := aggregator.Cache.GetReactions(ctx, postId)
		if ok {
			return view.Normalize(), nil
		}
	}

	return aggregator.GetReactions(ctx, postId)
}

// AddReaction persists the reaction and returns view with userId added.
// view is modified in place.
func (aggregator *ReactionAggregator) AddReaction(ctx context.Context, postId uuid.UUID, userId uuid.UUID, kind model.ReactionKind, view model.ReactionView) (model.ReactionView, error) {
	view = view.Normalize()

	if view.HasUser(userId) {
		return view, model.ErrAlreadyReacted
	}

	reaction := model.Reaction{
		UserId:    userId,
		PostId:    postId,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}

	err := aggregator.ReactionStore.CreateReaction(ctx, reaction)
	if err != nil {
		return view, err
	}

	view.Add(kind, userId)

	return view, nil
}

func (aggregator *ReactionAggregator) SaveReactions(ctx context.Context, postId uuid.UUID, view model.ReactionView) {
	if !aggregator.UseCache {
		return
	}

	err := aggregator.Cache.SetReactions(ctx, postId, view, aggregator.CacheTTL)
	if err != nil {
		observability.WithContext(ctx, aggregator.Log).Warn("failed to write reaction cache",
			zap.String("postId", postId.String()),
			zap.Error(err),
		)
	}
}
