package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/ferdian3456/postreaction/internal/util"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/ferdian3456/postreaction/internal/usecase")

type PostUsecase struct {
	PostStore  PostStore
	Aggregator *ReactionAggregator
	Log        *zap.Logger
}

func NewPostUsecase(postStore PostStore, aggregator *ReactionAggregator, zap *zap.Logger) *PostUsecase {
	return &PostUsecase{
		PostStore:  postStore,
		Aggregator: aggregator,
		Log:        zap,
	}
}

func validateTitle(title string) error {
	if title == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Title is required to not be empty",
			Param:   "title",
		}
	} else if utf8.RuneCountInString(title) > constant.POST_TITLE_MAX_LENGTH {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Title must be at most %d characters", constant.POST_TITLE_MAX_LENGTH),
			Param:   "title",
		}
	}

	return nil
}

func (usecase *PostUsecase) CreatePost(ctx context.Context, ownerId uuid.UUID, payload model.PostCreateRequest) (model.PostCreateResponse, error) {
	response := model.PostCreateResponse{}

	title := strings.TrimSpace(payload.Title)
	err := validateTitle(title)
	if err != nil {
		return response, err
	}

	now := time.Now().UTC()
	post := model.Post{
		Id:          uuid.New(),
		OwnerId:     ownerId,
		Title:       title,
		Description: util.TrimToNil(payload.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = usecase.PostStore.CreatePost(ctx, post)
	if err != nil {
		return response, err
	}

	response = model.PostCreateResponse{
		Id:     post.Id,
		Title:  post.Title,
		Detail: fmt.Sprintf("Post %q was created!", post.Title),
	}

	return response, nil
}

// GetPost always reads reactions from the store and refreshes the cache
// with the result.
func (usecase *PostUsecase) GetPost(ctx context.Context, postId uuid.UUID) (model.PostResponse, error) {
	post, err := usecase.PostStore.GetPost(ctx, postId)
	if err != nil {
		return model.PostResponse{}, err
	}

	view, err := usecase.Aggregator.GetReactions(ctx, postId)
	if err != nil {
		return model.PostResponse{}, err
	}

	usecase.Aggregator.SaveReactions(ctx, postId, view)

	return model.NewPostResponse(post, view), nil
}

func (usecase *PostUsecase) ListPosts(ctx context.Context, offset int) ([]model.PostListItem, error) {
	if offset < 0 {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Skip must not be negative",
			Param:   "skip",
		}
	}

	posts, err := usecase.PostStore.ListPosts(ctx, offset, constant.POST_PAGE_SIZE)
	if err != nil {
		return nil, err
	}

	postIds := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		postIds = append(postIds, post.Id)
	}

	counts, err := usecase.PostStore.CountReactions(ctx, postIds)
	if err != nil {
		return nil, err
	}

	items := make([]model.PostListItem, 0, len(posts))
	for _, post := range posts {
		postCounts, ok := counts[post.Id]
		if !ok {
			postCounts = model.NewReactionCounts()
		}

		items = append(items, model.PostListItem{
			Id:          post.Id,
			OwnerId:     post.OwnerId,
			Title:       post.Title,
			Description: post.Description,
			CreatedAt:   post.CreatedAt,
			UpdatedAt:   post.UpdatedAt,
			Reactions:   postCounts,
		})
	}

	return items, nil
}

func (usecase *PostUsecase) UpdatePost(ctx context.Context, postId uuid.UUID, requesterId uuid.UUID, payload model.PostUpdateRequest) error {
	post, err := usecase.PostStore.GetPost(ctx, postId)
	if err != nil {
		return err
	}

	if post.OwnerId != requesterId {
		return model.ErrNotPostOwner
	}

	patch := model.PostUpdateRequest{
		Title:       util.TrimToNil(payload.Title),
		Description: util.TrimToNil(payload.Description),
	}

	if patch.IsEmpty() {
		return model.ErrEmptyPostUpdate
	}

	if patch.Title != nil {
		err = validateTitle(*patch.Title)
		if err != nil {
			return err
		}
	}

	err = usecase.PostStore.UpdatePost(ctx, postId, patch, time.Now().UTC())
	if err != nil {
		return err
	}

	return nil
}

// DeletePost leaves any cached reaction view to expire on its own.
func (usecase *PostUsecase) DeletePost(ctx context.Context, postId uuid.UUID, requesterId uuid.UUID) error {
	post, err := usecase.PostStore.GetPost(ctx, postId)
	if err != nil {
		return err
	}

	if post.OwnerId != requesterId {
		return model.ErrNotPostOwner
	}

	err = usecase.PostStore.DeletePost(ctx, postId)
	if err != nil {
		return err
	}

	return nil
}

func (usecase *PostUsecase) React(ctx context.Context, postId uuid.UUID, userId uuid.UUID, kind model.ReactionKind) error {
	ctx, span := tracer.Start(ctx, "PostUsecase.React")
	defer span.End()

	span.SetAttributes(
		attribute.String("post.id", postId.String()),
		attribute.String("reaction.kind", string(kind)),
	)

	err := usecase.react(ctx, postId, userId, kind)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (usecase *PostUsecase) react(ctx context.Context, postId uuid.UUID, userId uuid.UUID, kind model.ReactionKind) error {
	if !kind.IsValid() {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Reaction is not supported",
			Param:   "reaction",
		}
	}

	post, err := usecase.PostStore.GetPost(ctx, postId)
	if err != nil {
		return err
	}

	if post.OwnerId == userId {
		return model.ErrSelfReaction
	}

	view, err := usecase.Aggregator.LoadReactions(ctx, postId)
	if err != nil {
		return err
	}

	view, err = usecase.Aggregator.AddReaction(ctx, postId, userId, kind, view)
	if err != nil {
		return err
	}

	usecase.Aggregator.SaveReactions(ctx, postId, view)

	return nil
}
