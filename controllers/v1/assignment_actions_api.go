package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"consulting-crm-backend/controllers"
	assignmenthandler "consulting-crm-backend/lib/assignment"
	filestorage "consulting-crm-backend/lib/file-storage"
	"consulting-crm-backend/middleware"
	apimodels "consulting-crm-backend/models/api"
	assignmentapimodels "consulting-crm-backend/models/api/assignment"
)

type assignmentActionsApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentActionsApiRouters(app *fiber.App) {
	controller := assignmentActionsApiController{}
	app.Route("assignment/:id", func(idRoute fiber.Router) {
		idRoute.Put("submit", controller.submit)       // отправить на согласование
		idRoute.Put("activate", controller.activate)   // запустить в работу
		idRoute.Put("hold", controller.hold)           // приостановить
		idRoute.Put("resume", controller.resume)       // возобновить
		idRoute.Put("complete", controller.complete)   // завершить
		idRoute.Put("terminate", controller.terminate) // прекратить досрочно
		idRoute.Put("cancel", controller.cancel)       // отменить
		idRoute.Post("time", controller.logTime)
		idRoute.Post("extension", controller.extend)
		idRoute.Put("extension/:extension_id", controller.decideExtension)
		idRoute.Post("note", controller.addNote)
		idRoute.Post("milestone", controller.addMilestone)
		idRoute.Post("document", controller.attachDocument)
		idRoute.Post("rollover", controller.rollover)
	})
}

// @Summary На согласование
// @Tags Назначение
// @Description Отправка назначения на согласование
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/submit [put]
func (c *assignmentActionsApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.SubmitForApproval(spaceID, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки на согласование")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Запуск в работу
// @Tags Назначение
// @Description Перевод согласованного назначения в работу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/activate [put]
func (c *assignmentActionsApiController) activate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Activate(spaceID, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запуска назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Приостановка
// @Tags Назначение
// @Description Приостановка работы по назначению
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.StatusReasonData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/hold [put]
func (c *assignmentActionsApiController) hold(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.StatusReasonData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Hold(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка приостановки назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Возобновление
// @Tags Назначение
// @Description Возобновление приостановленного назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/resume [put]
func (c *assignmentActionsApiController) resume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Resume(spaceID, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка возобновления назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Завершение
// @Tags Назначение
// @Description Завершение работы с оценкой клиента
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.CompleteData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/complete [put]
func (c *assignmentActionsApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.CompleteData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Complete(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка завершения назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Досрочное прекращение
// @Tags Назначение
// @Description Досрочное прекращение с обязательной причиной
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.StatusReasonData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/terminate [put]
func (c *assignmentActionsApiController) terminate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.StatusReasonData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Terminate(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка прекращения назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отмена
// @Tags Назначение
// @Description Отмена назначения до запуска в работу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.StatusReasonData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/cancel [put]
func (c *assignmentActionsApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.StatusReasonData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Cancel(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Списание времени
// @Tags Назначение
// @Description Списание часов по назначению в работе
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.LogTimeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/time [post]
func (c *assignmentActionsApiController) logTime(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.LogTimeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	hMsg, err := assignmenthandler.Instance.LogTime(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка списания времени")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(hMsg))
}

// @Summary Запрос продления
// @Tags Назначение
// @Description Запрос продления срока назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.ExtendData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/extension [post]
func (c *assignmentActionsApiController) extend(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.ExtendData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	extensionID, err := assignmenthandler.Instance.Extend(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запроса продления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(extensionID))
}

// @Summary Решение по продлению
// @Tags Назначение
// @Description Решение по записи о продлении
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.ExtensionDecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   extension_id		path    string  				    	true         "extension ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/extension/{extension_id} [put]
func (c *assignmentActionsApiController) decideExtension(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	extensionID, err := c.GetIDByKey(ctx, "extension_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.ExtensionDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.DecideExtension(spaceID, id, extensionID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка решения по продлению")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Добавление заметки
// @Tags Назначение
// @Description Добавление заметки к назначению
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.NoteData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/note [post]
func (c *assignmentActionsApiController) addNote(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.NoteData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	noteID, err := assignmenthandler.Instance.AddNote(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления заметки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(noteID))
}

// @Summary Добавление вехи
// @Tags Назначение
// @Description Добавление вехи к назначению
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.MilestoneData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/milestone [post]
func (c *assignmentActionsApiController) addMilestone(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.MilestoneData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	milestoneID, err := assignmenthandler.Instance.AddMilestone(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления вехи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(milestoneID))
}

// @Summary Приложение документа
// @Tags Назначение
// @Description Загрузка документа назначения в хранилище
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file				formData	file	true	"файл документа"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/document [post]
func (c *assignmentActionsApiController) attachDocument(ctx *fiber.Ctx) error {
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
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	defer file.Close()

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	fileID, err := filestorage.Instance.UploadDocument(ctx.Context(), spaceID, id, file, fileHeader.Size, fileHeader.Filename)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки документа")
	}
	docID, err := assignmenthandler.Instance.AttachDocument(spaceID, id, userID, fileHeader.Filename, fileID, fileHeader.Size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка приложения документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(docID))
}

// @Summary Перенос
// @Tags Назначение
// @Description Создание нового назначения на основе завершенного
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.RolloverData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/rollover [post]
func (c *assignmentActionsApiController) rollover(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.RolloverData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	newID, err := assignmenthandler.Instance.Rollover(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка переноса назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(newID))
}
