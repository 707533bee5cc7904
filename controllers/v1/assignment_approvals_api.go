package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"consulting-crm-backend/controllers"
	assignmenthandler "consulting-crm-backend/lib/assignment"
	"consulting-crm-backend/middleware"
	apimodels "consulting-crm-backend/models/api"
	assignmentapimodels "consulting-crm-backend/models/api/assignment"
)

type assignmentApprovalsApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApprovalsApiRouters(app *fiber.App) {
	controller := assignmentApprovalsApiController{}
	app.Route("assignment/:id", func(idRoute fiber.Router) {
		idRoute.Put("approve", controller.approve) // согласовать уровень
		idRoute.Put("reject", controller.reject)   // отклонить
	})
}

// @Summary Согласование уровня
// @Tags Согласование назначения
// @Description Согласование текущего уровня цепочки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.ApproveData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/approve [put]
func (c *assignmentApprovalsApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.ApproveData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Approve(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонение
// @Tags Согласование назначения
// @Description Отклонение назначения на уровне цепочки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assignmentapimodels.RejectData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id}/reject [put]
func (c *assignmentApprovalsApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = assignmenthandler.Instance.Reject(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
