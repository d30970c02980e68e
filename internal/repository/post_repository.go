package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *PostRepository) CreatePost(ctx context.Context, post model.Post) error {
	query := "INSERT INTO posts (id, owner_id, title, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)"

	_, err := repository.DB.Exec(ctx, query, post.Id, post.OwnerId, post.Title, post.Description, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) GetPost(ctx context.Context, postId uuid.UUID) (model.Post, error) {
	query := "SELECT id, owner_id, title, description, created_at, updated_at FROM posts WHERE id = $1"

	var post model.Post
	err := repository.DB.QueryRow(ctx, query, postId).Scan(&post.Id, &post.OwnerId, &post.Title, &post.Description, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post, model.ErrPostNotFound
		}
		return post, err
	}

	return post, nil
}

func (repository *PostRepository) ListPosts(ctx context.Context, offset int, limit int) ([]model.Post, error) {
	query := `
		SELECT id, owner_id, title, description, created_at, updated_at
		FROM posts
		ORDER BY created_at ASC, id ASC
		OFFSET $1
		LIMIT $2
	`

	rows, err := repository.DB.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}

	for rows.Next() {
		var post model.Post
		err := rows.Scan(&post.Id, &post.OwnerId, &post.Title, &post.Description, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// CountReactions tallies every post in postIds with a single grouped query.
// Posts without reactions still get a zeroed entry.
func (repository *PostRepository) CountReactions(ctx context.Context, postIds []uuid.UUID) (map[uuid.UUID]model.ReactionCounts, error) {
	result := make(map[uuid.UUID]model.ReactionCounts, len(postIds))
	for _, postId := range postIds {
		result[postId] = model.NewReactionCounts()
	}

	if len(postIds) == 0 {
		return result, nil
	}

	query := `
		SELECT post_id, kind, COUNT(*)
		FROM reactions
		WHERE post_id = ANY($1)
		GROUP BY post_id, kind
	`

	rows, err := repository.DB.Query(ctx, query, postIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postId uuid.UUID
		var kind string
		var count int
		err := rows.Scan(&postId, &kind, &count)
		if err != nil {
			return nil, err
		}

		reactionKind, ok := model.ParseReactionKind(kind)
		if !ok {
			repository.Log.Warn("unknown reaction kind in store", zap.String("kind", kind), zap.String("postId", postId.String()))
			continue
		}

		counts, ok := result[postId]
		if !ok {
			continue
		}
		counts[reactionKind] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// UpdatePost writes only the non-nil fields of patch and always refreshes updated_at.
func (repository *PostRepository) UpdatePost(ctx context.Context, postId uuid.UUID, patch model.PostUpdateRequest, updatedAt time.Time) error {
	sets := []string{}
	args := []any{}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, "title = $"+strconv.Itoa(len(args)))
	}

	if patch.Description != nil {
		args = append(args, *patch.Description)
		sets = append(sets, "description = $"+strconv.Itoa(len(args)))
	}

	args = append(args, updatedAt)
	sets = append(sets, "updated_at = $"+strconv.Itoa(len(args)))

	args = append(args, postId)
	query := "UPDATE posts SET " + strings.Join(sets, ", ") + " WHERE id = $" + strconv.Itoa(len(args))

	tag, err := repository.DB.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

func (repository *PostRepository) DeletePost(ctx context.Context, postId uuid.UUID) error {
	query := "DELETE FROM posts WHERE id = $1"

	tag, err := repository.DB.Exec(ctx, query, postId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}
