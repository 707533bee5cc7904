package staffingapimodels

import (
	"time"

	"github.com/pkg/errors"

	"consulting-crm-backend/models"
	apimodels "consulting-crm-backend/models/api"
	assignmentapimodels "consulting-crm-backend/models/api/assignment"
	dbmodels "consulting-crm-backend/models/db"
)

type StaffingRequestData struct {
	ClientID            string                       `json:"client_id"`            // ид клиента
	ProjectID           string                       `json:"project_id"`           // ид проекта
	RoleTitle           string                       `json:"role_title"`           // название роли
	Grade               string                       `json:"grade"`                // требуемый грейд
	Requirements        string                       `json:"requirements"`         // требования
	RequestedAllocation float64                      `json:"requested_allocation"` // процент загрузки
	RequestedStart      *time.Time                   `json:"requested_start"`      // желаемая дата начала
	RequestedEnd        *time.Time                   `json:"requested_end"`        // желаемая дата окончания
	Billable            bool                         `json:"billable"`             // оплачиваемая роль
	RateType            models.RateType              `json:"rate_type"`            // тип ставки
	ClientRate          assignmentapimodels.RateData `json:"client_rate"`          // клиентская ставка
	CostRate            assignmentapimodels.RateData `json:"cost_rate"`            // внутренняя ставка
	BudgetAllocated     float64                      `json:"budget_allocated"`     // выделенный бюджет
	EstimatedHours      float64                      `json:"estimated_hours"`      // оценка трудозатрат
	Urgency             models.SRUrgency             `json:"urgency"`              // срочность
}

func (v StaffingRequestData) Validate() error {
	if v.ClientID == "" {
		return errors.New("отсутсвует ссылка на клиента")
	}
	if v.RoleTitle == "" {
		return errors.New("отсутсвует название роли")
	}
	if v.RequestedAllocation < 0 || v.RequestedAllocation > 100 {
		return errors.New("процент загрузки должен быть в диапазоне от 0 до 100")
	}
	if v.Billable {
		if err := v.RateType.Validate(); err != nil {
			return err
		}
	}
	if v.ClientRate.Currency != "" && v.CostRate.Currency != "" &&
		v.ClientRate.Currency != v.CostRate.Currency {
		return errors.New("валюты клиентской и внутренней ставок не совпадают")
	}
	return v.Urgency.Validate()
}

type StaffingRequestView struct {
	StaffingRequestData
	ID           string                       `json:"id"`
	CreationDate time.Time                    `json:"creation_date"`
	AuthorID     string                       `json:"author_id"`
	AuthorName   string                       `json:"author_name"`
	ClientName   string                       `json:"client_name"`
	ProjectName  string                       `json:"project_name"`
	Status       models.StaffingRequestStatus `json:"status"`
	StatusName   string                       `json:"status_name"`
}

func StaffingRequestConvert(rec dbmodels.StaffingRequest) StaffingRequestView {
	result := StaffingRequestView{
		StaffingRequestData: StaffingRequestData{
			ClientID:            rec.ClientID,
			RoleTitle:           rec.RoleTitle,
			Grade:               rec.Grade,
			Requirements:        rec.Requirements,
			RequestedAllocation: rec.RequestedAllocation,
			RequestedStart:      rec.RequestedStart,
			RequestedEnd:        rec.RequestedEnd,
			Billable:            rec.Billable,
			RateType:            rec.RateType,
			ClientRate:          assignmentapimodels.RateData{Amount: rec.ClientRate, Currency: rec.ClientRateCurrency},
			CostRate:            assignmentapimodels.RateData{Amount: rec.CostRate, Currency: rec.CostRateCurrency},
			BudgetAllocated:     rec.BudgetAllocated,
			EstimatedHours:      rec.EstimatedHours,
			Urgency:             rec.Urgency,
		},
		ID:           rec.ID,
		CreationDate: rec.CreatedAt,
		AuthorID:     rec.AuthorID,
		Status:       rec.Status,
		StatusName:   rec.Status.ToHuman(),
	}
	if rec.ProjectID != nil {
		result.ProjectID = *rec.ProjectID
	}
	if rec.Author != nil {
		result.AuthorName = rec.Author.GetFullName()
	}
	if rec.Client != nil {
		result.ClientName = rec.Client.Name
	}
	if rec.Project != nil {
		result.ProjectName = rec.Project.Name
	}
	return result
}

type CreateAssignmentData struct {
	ConsultantID string                                 `json:"consultant_id"` // назначаемый консультант
	ApprovalLevels []assignmentapimodels.ApprovalLevelData `json:"approval_levels"`
}

func (v CreateAssignmentData) Validate() error {
	if v.ConsultantID == "" {
		return errors.New("отсутсвует ссылка на консультанта")
	}
	return assignmentapimodels.ApprovalLevels{ApprovalLevels: v.ApprovalLevels}.Validate()
}

type StaffingRequestFilter struct {
	apimodels.Pagination
	Statuses []models.StaffingRequestStatus `json:"statuses"`  // фильтр по статусам
	ClientID string                         `json:"client_id"` // фильтр по клиенту
}

func (v StaffingRequestFilter) Validate() error {
	for _, status := range v.Statuses {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	return nil
}
