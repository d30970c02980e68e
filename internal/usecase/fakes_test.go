package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("store is down")

type fakePostStore struct {
	posts   map[uuid.UUID]model.Post
	counts  map[uuid.UUID]model.ReactionCounts
	updated map[uuid.UUID]model.PostUpdateRequest
	deleted []uuid.UUID
	listErr error

	listOffset int
	listLimit  int
}

func newFakePostStore(posts ...model.Post) *fakePostStore {
	store := &fakePostStore{
		posts:   map[uuid.UUID]model.Post{},
		counts:  map[uuid.UUID]model.ReactionCounts{},
		updated: map[uuid.UUID]model.PostUpdateRequest{},
	}
	for _, post := range posts {
		store.posts[post.Id] = post
	}
	return store
}

func (s *fakePostStore) CreatePost(ctx context.Context, post model.Post) error {
	s.posts[post.Id] = post
	return nil
}

func (s *fakePostStore) GetPost(ctx context.Context, postId uuid.UUID) (model.Post, error) {
	post, ok := s.posts[postId]
	if !ok {
		return model.Post{}, model.ErrPostNotFound
	}
	return post, nil
}

func (s *fakePostStore) ListPosts(ctx context.Context, offset int, limit int) ([]model.Post, error) {
	s.listOffset = offset
	s.listLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}

	posts := make([]model.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})

	if offset >= len(posts) {
		return []model.Post{}, nil
	}
	posts = posts[offset:]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *fakePostStore) CountReactions(ctx context.Context, postIds []uuid.UUID) (map[uuid.UUID]model.ReactionCounts, error) {
	result := make(map[uuid.UUID]model.ReactionCounts, len(postIds))
	for _, id := range postIds {
		if counts, ok := s.counts[id]; ok {
			result[id] = counts
		}
	}
	return result, nil
}

func (s *fakePostStore) UpdatePost(ctx context.Context, postId uuid.UUID, patch model.PostUpdateRequest, updatedAt time.Time) error {
	s.updated[postId] = patch
	return nil
}

func (s *fakePostStore) DeletePost(ctx context.Context, postId uuid.UUID) error {
	delete(s.posts, postId)
	s.deleted = append(s.deleted, postId)
	return nil
}

type fakeReactionStore struct {
	reactions []model.Reaction
	createErr error
	getErr    error
	reads     int
}

func (s *fakeReactionStore) GetReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, error) {
	s.reads++
	if s.getErr != nil {
		return nil, s.getErr
	}

	view := model.NewReactionView()
	for _, reaction := range s.reactions {
		if reaction.PostId == postId {
			view.Add(reaction.Kind, reaction.UserId)
		}
	}
	return view, nil
}

func (s *fakeReactionStore) CreateReaction(ctx context.Context, reaction model.Reaction) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.reactions = append(s.reactions, reaction)
	return nil
}

type fakeReactionCache struct {
	entries map[uuid.UUID]model.ReactionView
	ttls    map[uuid.UUID]time.Duration
	setErr  error
	writes  int
}

func newFakeReactionCache() *fakeReactionCache {
	return &fakeReactionCache{
		entries: map[uuid.UUID]model.ReactionView{},
		ttls:    map[uuid.UUID]time.Duration{},
	}
}

func (c *fakeReactionCache) GetReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, bool) {
	view, ok := c.entries[postId]
	return view, ok
}

func (c *fakeReactionCache) SetReactions(ctx context.Context, postId uuid.UUID, view model.ReactionView, ttl time.Duration) error {
	c.writes++
	if c.setErr != nil {
		return c.setErr
	}
	if view.IsEmpty() {
		return nil
	}
	c.entries[postId] = view
	c.ttls[postId] = ttl
	return nil
}
