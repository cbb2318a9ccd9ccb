package apiv1

import (
	"io"

	"doc-flow-backend/controllers"
	documenthandler "doc-flow-backend/lib/document"
	"doc-flow-backend/middleware"
	apimodels "doc-flow-backend/models/api"
	docapimodels "doc-flow-backend/models/api/doc"

	"github.com/gofiber/fiber/v2"
)

type documentApiController struct {
	controllers.BaseAPIController
}

func InitDocumentApiRouters(app *fiber.App) {
	controller := documentApiController{}
	app.Route("document", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Route("file", func(fileRoute fiber.Router) {
				fileRoute.Post("", controller.uploadFile)
				fileRoute.Get("", controller.listFiles)
				fileRoute.Get(":file_id", controller.downloadFile)
			})
		})
	})
}

// @Summary Создание
// @Tags Документ
// @Description Создание документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 docapimodels.DocumentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document [post]
func (c *documentApiController) create(ctx *fiber.Ctx) error {
	var payload docapimodels.DocumentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := documenthandler.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Документ
// @Description Список документов пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]docapimodels.DocumentView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document [get]
func (c *documentApiController) list(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	list, err := documenthandler.Instance.List(userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка документов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Документ
// @Description Получение документа по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=docapimodels.DocumentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document/{id} [get]
func (c *documentApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	resp, err := documenthandler.Instance.Get(id, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Документ
// @Description Удаление документа вместе с активным маршрутом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document/{id} [delete]
func (c *documentApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	err = documenthandler.Instance.Delete(id, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Загрузка файла
// @Tags Документ
// @Description Загрузка файла документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file				formData	file	true	"файл документа"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document/{id}/file [post]
func (c *documentApiController) uploadFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось открыть файл из запроса"))
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	fileID, err := documenthandler.Instance.UploadFile(ctx.UserContext(), id, userID, role,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Список файлов
// @Tags Документ
// @Description Список файлов документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document/{id}/file [get]
func (c *documentApiController) listFiles(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	list, err := documenthandler.Instance.ListFiles(id, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка файлов документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Скачивание файла
// @Tags Документ
// @Description Скачивание файла документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file_id      		path    string  				    	true         "file ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/document/{id}/file/{file_id} [get]
func (c *documentApiController) downloadFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileID, err := c.GetIDByKey(ctx, "file_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	rec, body, err := documenthandler.Instance.GetFile(ctx.UserContext(), id, fileID, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания файла документа")
	}
	ctx.Set(fiber.HeaderContentType, rec.MimeType)
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename="+rec.Name)
	return ctx.Status(fiber.StatusOK).Send(body)
}
