package apiv1

import (
	"doc-flow-backend/controllers"
	pdfexport "doc-flow-backend/lib/export/pdf"
	xlsexport "doc-flow-backend/lib/export/xls"
	reviewshandler "doc-flow-backend/lib/reviews"
	"doc-flow-backend/middleware"
	apimodels "doc-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type reviewsApiController struct {
	controllers.BaseAPIController
}

func InitReviewsApiRouters(app *fiber.App) {
	controller := reviewsApiController{}
	app.Route("reviews", func(router fiber.Router) {
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("export/xls", controller.exportXls)
			idRoute.Get("export/pdf", controller.exportPdf)
		})
	})
}

// @Summary История оценок
// @Tags Оценки
// @Description История оценок документа по всем маршрутам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "document ID"
// @Success 200 {object} apimodels.Response{data=reviewapimodels.ReviewsView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviews/{id} [get]
func (c *reviewsApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	resp, err := reviewshandler.Instance.Get(id, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории оценок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка в xlsx
// @Tags Оценки
// @Description Выгрузка истории оценок документа в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "document ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviews/{id}/export/xls [get]
func (c *reviewsApiController) exportXls(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	view, err := reviewshandler.Instance.Get(id, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории оценок")
	}
	buf, err := xlsexport.Instance.ExportReviews(*view)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки истории оценок в xlsx")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=reviews.xlsx")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Выгрузка в pdf
// @Tags Оценки
// @Description Выгрузка истории оценок документа в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "document ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviews/{id}/export/pdf [get]
func (c *reviewsApiController) exportPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	view, err := reviewshandler.Instance.Get(id, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории оценок")
	}
	pdfFile, err := pdfexport.GenerateReviewsReport(*view)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки истории оценок в pdf")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=reviews.pdf")
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}
