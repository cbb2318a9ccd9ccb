package apiv1

import (
	"doc-flow-backend/controllers"
	taghandler "doc-flow-backend/lib/tag"
	"doc-flow-backend/middleware"
	apimodels "doc-flow-backend/models/api"
	tagapimodels "doc-flow-backend/models/api/tag"

	"github.com/gofiber/fiber/v2"
)

type tagApiController struct {
	controllers.BaseAPIController
}

func InitTagApiRouters(app *fiber.App) {
	controller := tagApiController{}
	app.Route("tag", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Delete(":id", middleware.AdminRequired(), controller.delete)
	})
}

// @Summary Создание
// @Tags Метка
// @Description Создание метки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tagapimodels.TagData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tag [post]
func (c *tagApiController) create(ctx *fiber.Ctx) error {
	var payload tagapimodels.TagData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := taghandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания метки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Метка
// @Description Список меток
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]tagapimodels.TagView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tag [get]
func (c *tagApiController) list(ctx *fiber.Ctx) error {
	list, err := taghandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка меток")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Удаление
// @Tags Метка
// @Description Удаление метки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tag/{id} [delete]
func (c *tagApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = taghandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления метки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
