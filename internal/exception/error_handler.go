package exception

import (
	"errors"
	"fmt"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func internalServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
			"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
		},
	})
}

// Recovery turns a panic in any later handler into the standard 500 body.
func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var errMsg string
			switch v := r.(type) {
			case error:
				errMsg = v.Error()
			case string:
				errMsg = v
			default:
				errMsg = fmt.Sprintf("%v", v)
			}

			log.Error("panic occurred and recovered",
				zap.String("error", errMsg),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)

			err = internalServerError(c)
		}()

		return c.Next()
	}
}

// ErrorHandler is the fiber.Config ErrorHandler. It keeps fiber's own
// errors (404 route, 405, body too large) in the same envelope as ours.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code := constant.ERR_VALIDATION_CODE
			if fiberErr.Code == fiber.StatusNotFound {
				code = constant.ERR_NOT_FOUND_ERROR
			}

			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    code,
					"message": fiberErr.Message,
				},
			})
		}

		return util.HandleError(c, log, err)
	}
}
