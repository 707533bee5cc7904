package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"consulting-crm-backend/controllers"
	reportshandler "consulting-crm-backend/lib/reports"
	"consulting-crm-backend/middleware"
	apimodels "consulting-crm-backend/models/api"
	reportapimodels "consulting-crm-backend/models/api/report"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("report", func(router fiber.Router) {
		router.Post("utilization", controller.utilization)
		router.Post("utilization/xlsx", controller.utilizationXlsx)
		router.Post("revenue", controller.revenue)
		router.Post("revenue/xlsx", controller.revenueXlsx)
		router.Post("revenue/pdf", controller.revenuePdf)
	})
}

// @Summary Отчет по загрузке
// @Tags Отчеты
// @Description Отчет по загрузке консультантов за период
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.ReportPeriod	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.UtilizationRow}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/utilization [post]
func (c *reportApiController) utilization(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportPeriod
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	rows, err := reportshandler.Instance.Utilization(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчета по загрузке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rows))
}

// @Summary Отчет по загрузке (Excel)
// @Tags Отчеты
// @Description Выгрузка отчета по загрузке консультантов в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.ReportPeriod	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/utilization/xlsx [post]
func (c *reportApiController) utilizationXlsx(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportPeriod
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	data, err := reportshandler.Instance.UtilizationXls(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета по загрузке в Excel")
	}
	fileName := fmt.Sprintf("utilization-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Отчет по выручке
// @Tags Отчеты
// @Description Отчет по выручке в разрезе клиентов и месяцев
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.ReportPeriod	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.RevenueRow}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/revenue [post]
func (c *reportApiController) revenue(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportPeriod
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	rows, err := reportshandler.Instance.Revenue(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчета по выручке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rows))
}

// @Summary Отчет по выручке (Excel)
// @Tags Отчеты
// @Description Выгрузка отчета по выручке в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.ReportPeriod	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/revenue/xlsx [post]
func (c *reportApiController) revenueXlsx(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportPeriod
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	data, err := reportshandler.Instance.RevenueXls(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета по выручке в Excel")
	}
	fileName := fmt.Sprintf("revenue-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Отчет по выручке (PDF)
// @Tags Отчеты
// @Description Выгрузка отчета по выручке в PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportapimodels.ReportPeriod	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/revenue/pdf [post]
func (c *reportApiController) revenuePdf(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportPeriod
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	body, err := reportshandler.Instance.RevenuePdf(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета по выручке в PDF")
	}
	fileName := fmt.Sprintf("revenue-%v.pdf", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}
