package http

import (
	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/middleware"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/ferdian3456/postreaction/internal/usecase"
	"github.com/ferdian3456/postreaction/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	UserUsecase *usecase.UserUsecase
	Log         *zap.Logger
}

func NewUserController(userUsecase *usecase.UserUsecase, zap *zap.Logger) *UserController {
	return &UserController{
		UserUsecase: userUsecase,
		Log:         zap,
	}
}

func invalidRequestBody() *model.ValidationError {
	return &model.ValidationError{
		Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
		Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
	}
}

func (controller UserController) Register(ctx *fiber.Ctx) error {
	var payload model.UserRegisterRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	response, err := controller.UserUsecase.Register(ctx.UserContext(), payload)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller UserController) Login(ctx *fiber.Ctx) error {
	var payload model.UserLoginRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	response, err := controller.UserUsecase.Login(ctx.UserContext(), payload)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) GetUserInfo(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	response, err := controller.UserUsecase.GetUserInfo(ctx.UserContext(), userId)
	if err != nil {
		return util.HandleError(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) Logout(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	err := controller.UserUsecase.Logout(ctx.UserContext(), userId)
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
