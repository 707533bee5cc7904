package reportstore

import (
	"time"

	"gorm.io/gorm"

	reportapimodels "consulting-crm-backend/models/api/report"
)

type Provider interface {
	Utilization(spaceID string, from, to time.Time) (rows []reportapimodels.UtilizationRow, err error)
	Revenue(spaceID string, from, to time.Time) (rows []reportapimodels.RevenueRow, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Utilization собирает загрузку консультантов за период:
// часы из списаний за период, показатели по назначениям, пересекающим период,
// средние считаются по назначениям, а не по числу списаний
func (i impl) Utilization(spaceID string, from, to time.Time) (rows []reportapimodels.UtilizationRow, err error) {
	rows = []reportapimodels.UtilizationRow{}
	err = i.db.Raw(`
		SELECT c.id AS consultant_id,
		       c.first_name || ' ' || c.last_name AS consultant_name,
		       c.code AS consultant_code,
		       COALESCE(th.billable_hours, 0) AS billable_hours,
		       COALESCE(th.non_billable_hours, 0) AS non_billable_hours,
		       COALESCE(aa.avg_allocation, 0) AS avg_allocation,
		       COALESCE(aa.avg_satisfaction, 0) AS avg_satisfaction,
		       COALESCE(aa.distinct_clients, 0) AS distinct_clients,
		       COALESCE(aa.distinct_projects, 0) AS distinct_projects
		FROM consultants c
		JOIN (
			SELECT a.consultant_id,
			       AVG(a.allocation_percent) AS avg_allocation,
			       AVG(a.satisfaction_rating) AS avg_satisfaction,
			       COUNT(DISTINCT a.client_id) AS distinct_clients,
			       COUNT(DISTINCT a.project_id) AS distinct_projects
			FROM assignments a
			WHERE a.space_id = ?
			  AND NOT a.is_deleted
			  AND (COALESCE(a.actual_start, a.proposed_start) IS NULL OR COALESCE(a.actual_start, a.proposed_start) <= ?)
			  AND (COALESCE(a.actual_end, a.proposed_end) IS NULL OR COALESCE(a.actual_end, a.proposed_end) >= ?)
			GROUP BY a.consultant_id
		) aa ON aa.consultant_id = c.id
		LEFT JOIN (
			SELECT te.consultant_id,
			       COALESCE(SUM(te.hours) FILTER (WHERE te.billable), 0) AS billable_hours,
			       COALESCE(SUM(te.hours) FILTER (WHERE NOT te.billable), 0) AS non_billable_hours
			FROM assignment_time_entries te
			WHERE te.space_id = ?
			  AND te.entry_date >= ?
			  AND te.entry_date <= ?
			GROUP BY te.consultant_id
		) th ON th.consultant_id = c.id
		WHERE c.space_id = ?
		ORDER BY consultant_name`,
		spaceID, to, from, spaceID, from, to, spaceID).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Revenue собирает выручку и себестоимость по оплачиваемым списаниям
// с разбивкой по клиентам и месяцам, неоплачиваемые назначения не участвуют
func (i impl) Revenue(spaceID string, from, to time.Time) (rows []reportapimodels.RevenueRow, err error) {
	rows = []reportapimodels.RevenueRow{}
	err = i.db.Raw(`
		SELECT cl.id AS client_id,
		       cl.name AS client_name,
		       to_char(date_trunc('month', te.entry_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(te.hours), 0) AS billable_hours,
		       COALESCE(SUM(te.hours * a.client_rate), 0) AS revenue,
		       COALESCE(SUM(te.hours * a.cost_rate), 0) AS cost
		FROM assignment_time_entries te
		JOIN clients cl ON cl.id = te.client_id
		JOIN assignments a ON a.id = te.assignment_id
		WHERE te.space_id = ?
		  AND te.billable
		  AND a.billable
		  AND te.entry_date >= ?
		  AND te.entry_date <= ?
		GROUP BY cl.id, cl.name, date_trunc('month', te.entry_date)
		ORDER BY month, client_name`,
		spaceID, from, to).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
