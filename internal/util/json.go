package util

import (
	"errors"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ReadRequestBody(ctx *fiber.Ctx, result interface{}) error {
	err := ctx.BodyParser(result)
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseNoData(ctx *fiber.Ctx) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "OK",
	})
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseWithDetail(ctx *fiber.Ctx, detail string) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "OK",
		"detail": detail,
	})
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": data,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendCreatedResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": data,
	})
	if err != nil {
		return err
	}

	return nil
}

// StatusFromCode is the single place where error codes become HTTP statuses.
func StatusFromCode(code string) int {
	switch code {
	case constant.ERR_VALIDATION_CODE, constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE, constant.ERR_SELF_REACTION_ERROR:
		return fiber.StatusBadRequest
	case constant.ERR_NOT_FOUND_ERROR:
		return fiber.StatusNotFound
	case constant.ERR_UNATHORIZED_ERROR:
		return fiber.StatusUnauthorized
	case constant.ERR_FORBIDDEN_ERROR:
		return fiber.StatusForbidden
	case constant.ERR_ALREADY_REACTED_ERROR, constant.ERR_CONFLICT_ERROR:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func SendErrorResponse(ctx *fiber.Ctx, error error) error {
	status := fiber.StatusBadRequest

	var validationErr *model.ValidationError
	if errors.As(error, &validationErr) {
		status = StatusFromCode(validationErr.Code)
		error = validationErr
	}

	err := ctx.Status(status).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
			"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
		},
	})

	if err != nil {
		return err
	}

	return err
}

// HandleError sends known request errors with their mapped status and
// everything else as an internal server error.
func HandleError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return SendErrorResponse(ctx, validationErr)
	}

	return SendErrorResponseInternalServer(ctx, log, err)
}
