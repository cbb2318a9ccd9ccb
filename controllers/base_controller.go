package controllers

import (
	"doc-flow-backend/lib/utils/apperrors"
	"doc-flow-backend/middleware"
	apimodels "doc-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан идентификатор (%v)", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("path", ctx.Path()).
		WithField("user_id", middleware.GetUserID(ctx))
}

// SendError переводит ошибку бизнес-логики в HTTP статус.
// Отсутствие записи и отсутствие доступа на чтение отдаются одинаково.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, hMsg string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(apperrors.ErrNotFound.Error()))
	case errors.Is(err, apperrors.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(apperrors.ErrForbidden.Error()))
	case errors.Is(err, apperrors.ErrConflict):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(apperrors.ErrConflict.Error()))
	}
	logger.WithError(err).Error(hMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(hMsg))
}
