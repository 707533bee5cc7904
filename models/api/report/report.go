package reportapimodels

import (
	"time"

	"github.com/pkg/errors"
)

type ReportPeriod struct {
	From *time.Time `json:"from"` // начало периода
	To   *time.Time `json:"to"`   // конец периода
}

func (v ReportPeriod) Validate() error {
	if v.From == nil || v.To == nil {
		return errors.New("не задан период отчета")
	}
	if v.To.Before(*v.From) {
		return errors.New("конец периода раньше начала")
	}
	return nil
}

type UtilizationRow struct {
	ConsultantID        string  `json:"consultant_id"`         // ид консультанта
	ConsultantName      string  `json:"consultant_name"`       // имя консультанта
	ConsultantCode      string  `json:"consultant_code"`       // табельный код
	BillableHours       float64 `json:"billable_hours"`        // оплачиваемые часы
	NonBillableHours    float64 `json:"non_billable_hours"`    // неоплачиваемые часы
	AvgAllocation       float64 `json:"avg_allocation"`        // средний процент загрузки
	AvgSatisfaction     float64 `json:"avg_satisfaction"`      // средняя оценка клиентов
	DistinctClients     int64   `json:"distinct_clients"`      // число клиентов
	DistinctProjects    int64   `json:"distinct_projects"`     // число проектов
}

type RevenueRow struct {
	ClientID      string  `json:"client_id"`      // ид клиента
	ClientName    string  `json:"client_name"`    // название клиента
	Month         string  `json:"month"`          // месяц в формате 2006-01
	BillableHours float64 `json:"billable_hours"` // оплачиваемые часы
	Revenue       float64 `json:"revenue"`        // выручка
	Cost          float64 `json:"cost"`           // себестоимость
	Margin        float64 `json:"margin"`         // маржа
	MarginPct     float64 `json:"margin_pct"`     // маржинальность в процентах
}
