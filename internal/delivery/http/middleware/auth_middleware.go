package middleware

import (
	"github.com/ferdian3456/postreaction/internal/usecase"
	"github.com/ferdian3456/postreaction/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	Log         *zap.Logger
	Config      *koanf.Koanf
	UserUsecase *usecase.UserUsecase
}

func NewAuthMiddleware(zap *zap.Logger, koanf *koanf.Koanf, userUsecase *usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		Log:         zap,
		Config:      koanf,
		UserUsecase: userUsecase,
	}
}

// ProtectedRoute accepts only the latest unrevoked access token of a user
// and stores its id in Locals("userId").
func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		tokenString, userId, err := util.ValidateAccessToken(authHeader, middleware.Log, middleware.Config.String("JWT_SECRET_KEY"))
		if err != nil {
			return util.HandleError(ctx, middleware.Log, err)
		}

		err = middleware.UserUsecase.GetAccessToken(ctx.UserContext(), userId, tokenString)
		if err != nil {
			return util.HandleError(ctx, middleware.Log, err)
		}

		ctx.Locals("userId", userId)

		return ctx.Next()
	}
}
