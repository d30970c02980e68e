package config

import (
	"testing"

	"github.com/ferdian3456/postreaction/internal/repository"
	"github.com/ferdian3456/postreaction/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewReactionCacheWithoutClient(t *testing.T) {
	cache := newReactionCache(zap.NewNop(), nil)
	require.Nil(t, cache)

	aggregator := usecase.NewReactionAggregator(repository.NewReactionRepository(zap.NewNop(), nil), cache, true, zap.NewNop())
	require.False(t, aggregator.UseCache)
}

func TestNewReactionCacheWithClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = client.Close() })

	cache := newReactionCache(zap.NewNop(), client)
	require.IsType(t, &repository.ReactionCacheRepository{}, cache)

	aggregator := usecase.NewReactionAggregator(repository.NewReactionRepository(zap.NewNop(), nil), cache, true, zap.NewNop())
	require.True(t, aggregator.UseCache)
}
