package repository

import (
	"context"
	"errors"

	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type ReactionRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewReactionRepository(zap *zap.Logger, db *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{
		Log: zap,
		DB:  db,
	}
}

// GetReactions returns the full view of a post, every kind present even when empty.
func (repository *ReactionRepository) GetReactions(ctx context.Context, postId uuid.UUID) (model.ReactionView, error) {
	query := "SELECT user_id, kind FROM reactions WHERE post_id = $1"

	rows, err := repository.DB.Query(ctx, query, postId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	view := model.NewReactionView()

	for rows.Next() {
		var userId uuid.UUID
		var kind string
		err := rows.Scan(&userId, &kind)
		if err != nil {
			return nil, err
		}

		reactionKind, ok := model.ParseReactionKind(kind)
		if !ok {
			repository.Log.Warn("unknown reaction kind in store", zap.String("kind", kind), zap.String("postId", postId.String()))
			continue
		}

		view.Add(reactionKind, userId)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return view, nil
}

// CreateReaction inserts a single row. The (user_id, post_id) primary key
// rejects a second reaction even when two requests race past the usecase check.
func (repository *ReactionRepository) CreateReaction(ctx context.Context, reaction model.Reaction) error {
	query := "INSERT INTO reactions (user_id, post_id, kind, created_at) VALUES ($1, $2, $3, $4)"

	_, err := repository.DB.Exec(ctx, query, reaction.UserId, reaction.PostId, string(reaction.Kind), reaction.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return model.ErrAlreadyReacted
			case pgForeignKeyViolation:
				return model.ErrPostNotFound
			}
		}
		return err
	}

	return nil
}
