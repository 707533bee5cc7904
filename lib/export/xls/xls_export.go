package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	reportapimodels "consulting-crm-backend/models/api/report"
)

type Provider interface {
	ExportUtilization(rows []reportapimodels.UtilizationRow) (*bytes.Buffer, error)
	ExportRevenue(rows []reportapimodels.RevenueRow) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var utilizationHeaders = []string{"Консультант", "Табельный код", "Оплачиваемые часы", "Неоплачиваемые часы", "Средняя загрузка, %", "Средняя оценка", "Клиентов", "Проектов"}

func (i impl) ExportUtilization(rows []reportapimodels.UtilizationRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, utilizationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(rows) != 0 {
		row, err = writeUtilizationData(f, sheet, rows, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Загрузка")
	return f.WriteToBuffer()
}

func writeUtilizationData(f *excelize.File, sheet string, rows []reportapimodels.UtilizationRow, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(utilizationHeaders), len(rows)+1); err != nil {
		return row, err
	}
	for _, item := range rows {
		row++
		// "Консультант"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ConsultantName); err != nil {
			return row, err
		}

		// "Табельный код"
		col++
		if err := writeColumn(f, sheet, col, row, item.ConsultantCode); err != nil {
			return row, err
		}

		// "Оплачиваемые часы"
		col++
		if err := writeColumn(f, sheet, col, row, item.BillableHours); err != nil {
			return row, err
		}

		// "Неоплачиваемые часы"
		col++
		if err := writeColumn(f, sheet, col, row, item.NonBillableHours); err != nil {
			return row, err
		}

		// "Средняя загрузка, %"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.1f", item.AvgAllocation)); err != nil {
			return row, err
		}

		// "Средняя оценка"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f", item.AvgSatisfaction)); err != nil {
			return row, err
		}

		// "Клиентов"
		col++
		if err := writeColumn(f, sheet, col, row, item.DistinctClients); err != nil {
			return row, err
		}

		// "Проектов"
		col++
		if err := writeColumn(f, sheet, col, row, item.DistinctProjects); err != nil {
			return row, err
		}
	}
	return row, nil
}

var revenueHeaders = []string{"Клиент", "Месяц", "Оплачиваемые часы", "Выручка", "Себестоимость", "Маржа", "Маржинальность, %"}

func (i impl) ExportRevenue(rows []reportapimodels.RevenueRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, revenueHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(rows) != 0 {
		row, err = writeRevenueData(f, sheet, rows, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Выручка")
	return f.WriteToBuffer()
}

func writeRevenueData(f *excelize.File, sheet string, rows []reportapimodels.RevenueRow, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(revenueHeaders), len(rows)+1); err != nil {
		return row, err
	}
	for _, item := range rows {
		row++
		// "Клиент"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ClientName); err != nil {
			return row, err
		}

		// "Месяц"
		col++
		if err := writeColumn(f, sheet, col, row, item.Month); err != nil {
			return row, err
		}

		// "Оплачиваемые часы"
		col++
		if err := writeColumn(f, sheet, col, row, item.BillableHours); err != nil {
			return row, err
		}

		// "Выручка"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f", item.Revenue)); err != nil {
			return row, err
		}

		// "Себестоимость"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f", item.Cost)); err != nil {
			return row, err
		}

		// "Маржа"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f", item.Margin)); err != nil {
			return row, err
		}

		// "Маржинальность, %"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.1f", item.MarginPct)); err != nil {
			return row, err
		}
	}
	return row, nil
}
