package initializers

import (
	"context"

	"consulting-crm-backend/config"
	"consulting-crm-backend/fiberlog"
	assignmenthandler "consulting-crm-backend/lib/assignment"
	clientprovider "consulting-crm-backend/lib/dicts/client"
	consultantprovider "consulting-crm-backend/lib/dicts/consultant"
	engagementprovider "consulting-crm-backend/lib/dicts/engagement"
	projectprovider "consulting-crm-backend/lib/dicts/project"
	xlsexport "consulting-crm-backend/lib/export/xls"
	licenceprovider "consulting-crm-backend/lib/licence"
	licenseworker "consulting-crm-backend/lib/licence/worker"
	notifyprovider "consulting-crm-backend/lib/notify"
	reportshandler "consulting-crm-backend/lib/reports"
	staffingreqhandler "consulting-crm-backend/lib/staffing-req"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	licenceprovider.NewHandler(licenceprovider.Config{
		DefaultPlan:  config.Conf.License.DefaultPlan,
		DefaultQuota: config.Conf.License.DefaultQuota,
		PeriodDays:   config.Conf.License.PeriodDays,
	})
	notifyprovider.NewHandler(config.Conf.Smtp.From)
	clientprovider.NewHandler()
	consultantprovider.NewHandler()
	projectprovider.NewHandler()
	engagementprovider.NewHandler()
	xlsexport.NewHandler()
	assignmenthandler.NewHandler(config.Conf.App.PageLimitCap)
	staffingreqhandler.NewHandler(config.Conf.App.PageLimitCap)
	reportshandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача контроля сроков действия лицензий
	licenseworker.StartWorker(ctx)
}
