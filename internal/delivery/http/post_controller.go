package http

import (
	"fmt"
	"strconv"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/middleware"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/ferdian3456/postreaction/internal/usecase"
	"github.com/ferdian3456/postreaction/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PostController struct {
	PostUsecase *usecase.PostUsecase
	Log         *zap.Logger
}

func NewPostController(postUsecase *usecase.PostUsecase, zap *zap.Logger) *PostController {
	return &PostController{
		PostUsecase: postUsecase,
		Log:         zap,
	}
}

func parsePostId(ctx *fiber.Ctx) (uuid.UUID, error) {
	postId, err := uuid.Parse(ctx.Params("postId"))
	if err != nil {
		return uuid.Nil, model.ErrInvalidPostId
	}

	return postId, nil
}

func (controller PostController) CreatePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.PostCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	response, err := controller.PostUsecase.CreatePost(ctx.UserContext(), userId, payload)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller PostController) GetPost(ctx *fiber.Ctx) error {
	postId, err := parsePostId(ctx)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PostUsecase.GetPost(ctx.UserContext(), postId)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PostController) ListPosts(ctx *fiber.Ctx) error {
	skip := 0
	if raw := ctx.Query("skip"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return util.SendErrorResponse(ctx, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Skip must be a number",
				Param:   "skip",
			})
		}
		skip = value
	}

	response, err := controller.PostUsecase.ListPosts(ctx.UserContext(), skip)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PostController) UpdatePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	postId, err := parsePostId(ctx)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	var payload model.PostUpdateRequest
	err = util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	err = controller.PostUsecase.UpdatePost(ctx.UserContext(), postId, userId, payload)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseWithDetail(ctx, "Post has been successfully updated!")
}

func (controller PostController) DeletePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	postId, err := parsePostId(ctx)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.PostUsecase.DeletePost(ctx.UserContext(), postId, userId)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseWithDetail(ctx, "Post has been successfully deleted!")
}

// React returns a handler bound to a single reaction kind, e.g. React(model.ReactionLike).
func (controller PostController) React(kind model.ReactionKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId := ctx.Locals("userId").(uuid.UUID)

		postId, err := parsePostId(ctx)
		if err != nil {
			return util.SendErrorResponse(ctx, err)
		}

		err = controller.PostUsecase.React(ctx.UserContext(), postId, userId, kind)
		if err != nil {
			return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
		}

		return util.SendSuccessResponseWithDetail(ctx, fmt.Sprintf("Successfully '%s' post!", kind))
	}
}
