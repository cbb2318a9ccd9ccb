package apiv1

import (
	"doc-flow-backend/controllers"
	routehandler "doc-flow-backend/lib/route"
	"doc-flow-backend/middleware"
	apimodels "doc-flow-backend/models/api"
	routeapimodels "doc-flow-backend/models/api/route"

	"github.com/gofiber/fiber/v2"
)

type routeApiController struct {
	controllers.BaseAPIController
}

func InitRouteApiRouters(app *fiber.App) {
	controller := routeApiController{}
	app.Route("route", func(router fiber.Router) {
		router.Post("start", controller.start)
		router.Post("validate", controller.validate)
		router.Get("", controller.list)
		router.Delete("", controller.cancel)
	})
}

// @Summary Запуск маршрута
// @Tags Маршрут
// @Description Запуск маршрута по документу из модели
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 routeapimodels.RouteStartData	true	"request body"
// @Success 200 {object} apimodels.Response{data=routeapimodels.RouteView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/route/start [post]
func (c *routeApiController) start(ctx *fiber.Ctx) error {
	var payload routeapimodels.RouteStartData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	resp, hMsg, err := routehandler.Instance.Start(userID, role, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запуска маршрута")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обработка шага
// @Tags Маршрут
// @Description Обработка текущего шага активного маршрута документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 routeapimodels.RouteValidateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=routeapimodels.RouteValidateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/route/validate [post]
func (c *routeApiController) validate(ctx *fiber.Ctx) error {
	var payload routeapimodels.RouteValidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	resp, hMsg, err := routehandler.Instance.Validate(userID, role, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обработки шага маршрута")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список маршрутов документа
// @Tags Маршрут
// @Description Маршруты документа от нового к старому
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   document_id   		query   string  				    	true         "document ID"
// @Success 200 {object} apimodels.Response{data=[]routeapimodels.RouteView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/route [get]
func (c *routeApiController) list(ctx *fiber.Ctx) error {
	documentID := ctx.Query("document_id")
	if documentID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор документа"))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	list, err := routehandler.Instance.ListByDocument(documentID, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка маршрутов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отмена маршрута
// @Tags Маршрут
// @Description Отмена активного маршрута документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   document_id   		query   string  				    	true         "document ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/route [delete]
func (c *routeApiController) cancel(ctx *fiber.Ctx) error {
	documentID := ctx.Query("document_id")
	if documentID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор документа"))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err := routehandler.Instance.Cancel(documentID, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены маршрута")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
