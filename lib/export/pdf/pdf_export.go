package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	reportapimodels "consulting-crm-backend/models/api/report"
)

// GenerateRevenueReport формирует pdf с таблицей выручки по клиентам и месяцам
func GenerateRevenueReport(rows []reportapimodels.RevenueRow, from, to time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateRevenueReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	// кириллица через транслятор, шрифты ядра не требуют файлов
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetFont("Arial", "B", 14)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	title := fmt.Sprintf("Отчет по выручке за период %s - %s",
		from.Format("02.01.2006"), to.Format("02.01.2006"))
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Клиент", "Месяц", "Часы", "Выручка", "Себестоимость", "Маржа", "Маржа, %"}
	widths := []float64{70, 25, 25, 35, 35, 35, 25}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for idx, header := range headers {
		pdf.CellFormat(widths[idx], 8, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, tr(row.ClientName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.Month, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%.1f", row.BillableHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", row.Revenue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.2f", row.Cost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.2f", row.Margin), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 7, fmt.Sprintf("%.1f", row.MarginPct), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
