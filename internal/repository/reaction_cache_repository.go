package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/ferdian3456/postreaction/internal/util"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ReactionCacheRepository struct {
	Log     *zap.Logger
	DBCache *redis.Client
}

func NewReactionCacheRepository(zap *zap.Logger, dbCache *redis.Client) *ReactionCacheRepository {
	return &ReactionCacheRepository{
		Log:     zap,
		DBCache: dbCache,
	}
}

func ReactionCacheKey(postId uuid.UUID) string {
	return util.BuildKey(constant.REACTION_CACHE_NAMESPACE, postId.String())
}

// Redis - Cache
// GetReactions never fails: a missing key, an unreachable redis or an
// undecodable value all report a miss.
func (repository *ReactionCacheRepository) GetReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, bool) {
	key := ReactionCacheKey(postId)

	value, err := repository.DBCache.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		repository.Log.Debug("reaction cache miss", zap.String("key", key))
		return nil, false
	} else if err != nil {
		repository.Log.Warn("reaction cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var view model.ReactionView
	err = sonic.Unmarshal(value, &view)
	if err != nil {
		repository.Log.Warn("reaction cache value is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return view.Normalize(), true
}

// SetReactions stores the view for ttl. An all-empty view is not written.
func (repository *ReactionCacheRepository) SetReactions(ctx context.Context, postId uuid.UUID, view model.ReactionView, ttl time.Duration) error {
	if view.IsEmpty() {
		return nil
	}

	value, err := sonic.Marshal(view)
	if err != nil {
		return err
	}

	err = repository.DBCache.Set(ctx, ReactionCacheKey(postId), value, ttl).Err()
	if err != nil {
		return err
	}

	return nil
}
