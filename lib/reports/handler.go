package reportshandler

import (
	"bytes"

	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	pdfexport "consulting-crm-backend/lib/export/pdf"
	xlsexport "consulting-crm-backend/lib/export/xls"
	reportstore "consulting-crm-backend/lib/reports/store"
	initchecker "consulting-crm-backend/lib/utils/init-checker"
	reportapimodels "consulting-crm-backend/models/api/report"
)

type Provider interface {
	Utilization(spaceID string, period reportapimodels.ReportPeriod) (rows []reportapimodels.UtilizationRow, err error)
	Revenue(spaceID string, period reportapimodels.ReportPeriod) (rows []reportapimodels.RevenueRow, err error)
	UtilizationXls(spaceID string, period reportapimodels.ReportPeriod) (*bytes.Buffer, error)
	RevenueXls(spaceID string, period reportapimodels.ReportPeriod) (*bytes.Buffer, error)
	RevenuePdf(spaceID string, period reportapimodels.ReportPeriod) (pdfFile []byte, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:     reportstore.NewInstance(db.DB),
		xlsExport: xlsexport.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"xlsExport", instance.xlsExport,
	)
	Instance = instance
}

type impl struct {
	store     reportstore.Provider
	xlsExport xlsexport.Provider
}

// CalcMargin возвращает маржу и маржинальность в процентах
func CalcMargin(revenue, cost float64) (margin, marginPct float64) {
	margin = revenue - cost
	if revenue == 0 {
		return margin, 0
	}
	return margin, margin / revenue * 100
}

func (i impl) Utilization(spaceID string, period reportapimodels.ReportPeriod) (rows []reportapimodels.UtilizationRow, err error) {
	err = period.Validate()
	if err != nil {
		return nil, err
	}
	rows, err = i.store.Utilization(spaceID, *period.From, *period.To)
	if err != nil {
		return nil, err
	}
	log.
		WithField("space_id", spaceID).
		WithField("row_count", len(rows)).
		Info("сформирован отчет по загрузке")
	return rows, nil
}

func (i impl) Revenue(spaceID string, period reportapimodels.ReportPeriod) (rows []reportapimodels.RevenueRow, err error) {
	err = period.Validate()
	if err != nil {
		return nil, err
	}
	rows, err = i.store.Revenue(spaceID, *period.From, *period.To)
	if err != nil {
		return nil, err
	}
	for idx := range rows {
		rows[idx].Margin, rows[idx].MarginPct = CalcMargin(rows[idx].Revenue, rows[idx].Cost)
	}
	log.
		WithField("space_id", spaceID).
		WithField("row_count", len(rows)).
		Info("сформирован отчет по выручке")
	return rows, nil
}

func (i impl) UtilizationXls(spaceID string, period reportapimodels.ReportPeriod) (*bytes.Buffer, error) {
	rows, err := i.Utilization(spaceID, period)
	if err != nil {
		return nil, err
	}
	return i.xlsExport.ExportUtilization(rows)
}

func (i impl) RevenueXls(spaceID string, period reportapimodels.ReportPeriod) (*bytes.Buffer, error) {
	rows, err := i.Revenue(spaceID, period)
	if err != nil {
		return nil, err
	}
	return i.xlsExport.ExportRevenue(rows)
}

func (i impl) RevenuePdf(spaceID string, period reportapimodels.ReportPeriod) (pdfFile []byte, err error) {
	rows, err := i.Revenue(spaceID, period)
	if err != nil {
		return nil, err
	}
	return pdfexport.GenerateRevenueReport(rows, *period.From, *period.To)
}
