package assignmentapimodels

import (
	"time"

	"github.com/pkg/errors"

	"consulting-crm-backend/models"
	apimodels "consulting-crm-backend/models/api"
)

type RateData struct {
	Amount   float64 `json:"amount"`   // сумма ставки
	Currency string  `json:"currency"` // код валюты
}

type AssignmentData struct {
	ConsultantID      string          `json:"consultant_id"`      // ид консультанта
	ClientID          string          `json:"client_id"`          // ид клиента
	ProjectID         string          `json:"project_id"`         // ид проекта
	EngagementID      string          `json:"engagement_id"`      // ид контракта
	Title             string          `json:"title"`              // роль на проекте
	ProposedStart     *time.Time      `json:"proposed_start"`     // плановая дата начала
	ProposedEnd       *time.Time      `json:"proposed_end"`       // плановая дата окончания
	AllocationPercent float64         `json:"allocation_percent"` // процент загрузки 0-100
	WeeklyHours       float64         `json:"weekly_hours"`       // целевые часы в неделю
	DailyHours        float64         `json:"daily_hours"`        // целевые часы в день
	Billable          bool            `json:"billable"`           // оплачиваемое назначение
	RateType          models.RateType `json:"rate_type"`          // тип ставки
	ClientRate        RateData        `json:"client_rate"`        // клиентская ставка
	CostRate          RateData        `json:"cost_rate"`          // внутренняя ставка
	BudgetAllocated   float64         `json:"budget_allocated"`   // выделенный бюджет
	ExpensesAllocated float64         `json:"expenses_allocated"` // выделено на расходы
	EstimatedHours    float64         `json:"estimated_hours"`    // оценка трудозатрат в часах
}

func (v AssignmentData) Validate() error {
	if v.ConsultantID == "" {
		return errors.New("отсутсвует ссылка на консультанта")
	}
	if v.ClientID == "" {
		return errors.New("отсутсвует ссылка на клиента")
	}
	if v.AllocationPercent < 0 || v.AllocationPercent > 100 {
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
	if v.ProposedStart != nil && v.ProposedEnd != nil && v.ProposedEnd.Before(*v.ProposedStart) {
		return errors.New("дата окончания раньше даты начала")
	}
	return nil
}

type ApprovalLevelData struct {
	Level      int    `json:"level"`       // порядковый номер уровня
	ApproverID string `json:"approver_id"` // ид согласующего
}

type ApprovalLevels struct {
	ApprovalLevels []ApprovalLevelData `json:"approval_levels"`
}

func (v ApprovalLevels) Validate() error {
	seenLevels := map[int]bool{}
	seenApprovers := map[string]bool{}
	for _, lvl := range v.ApprovalLevels {
		if lvl.ApproverID == "" {
			return errors.New("отсутсвует согласующий на уровне цепочки")
		}
		if lvl.Level <= 0 {
			return errors.New("уровень согласования должен быть больше нуля")
		}
		if seenLevels[lvl.Level] {
			return errors.Errorf("уровень %v указан более одного раза", lvl.Level)
		}
		if seenApprovers[lvl.ApproverID] {
			return errors.New("согласующий уже был указан на ранних уровнях")
		}
		seenLevels[lvl.Level] = true
		seenApprovers[lvl.ApproverID] = true
	}
	return nil
}

type AssignmentCreateData struct {
	AssignmentData
	ApprovalLevels
}

func (v AssignmentCreateData) Validate() error {
	if err := v.AssignmentData.Validate(); err != nil {
		return err
	}
	return v.ApprovalLevels.Validate()
}

// AssignmentEditData перечисляет изменяемые поля, обновление идет только по ним
type AssignmentEditData struct {
	Title             string     `json:"title"`
	ProposedStart     *time.Time `json:"proposed_start"`
	ProposedEnd       *time.Time `json:"proposed_end"`
	AllocationPercent float64    `json:"allocation_percent"`
	WeeklyHours       float64    `json:"weekly_hours"`
	DailyHours        float64    `json:"daily_hours"`
	BudgetAllocated   float64    `json:"budget_allocated"`
	ExpensesAllocated float64    `json:"expenses_allocated"`
	EstimatedHours    float64    `json:"estimated_hours"`
}

func (v AssignmentEditData) Validate() error {
	if v.AllocationPercent < 0 || v.AllocationPercent > 100 {
		return errors.New("процент загрузки должен быть в диапазоне от 0 до 100")
	}
	if v.ProposedStart != nil && v.ProposedEnd != nil && v.ProposedEnd.Before(*v.ProposedStart) {
		return errors.New("дата окончания раньше даты начала")
	}
	return nil
}

type LogTimeData struct {
	Hours       float64    `json:"hours"`       // количество часов
	Billable    bool       `json:"billable"`    // оплачиваемое время
	Date        *time.Time `json:"date"`        // дата списания
	Description string     `json:"description"` // описание работ
}

func (v LogTimeData) Validate() error {
	if v.Hours <= 0 {
		return errors.New("количество часов должно быть больше нуля")
	}
	if v.Date == nil {
		return errors.New("не указана дата списания")
	}
	return nil
}

type ExtendData struct {
	NewEndDate *time.Time `json:"new_end_date"` // запрашиваемая дата окончания
	Reason     string     `json:"reason"`       // обоснование продления
}

func (v ExtendData) Validate() error {
	if v.NewEndDate == nil {
		return errors.New("не указана новая дата окончания")
	}
	if v.Reason == "" {
		return errors.New("не указано обоснование продления")
	}
	return nil
}

type ExtensionDecisionData struct {
	Approve bool `json:"approve"` // решение по записи о продлении
}

type ApproveData struct {
	Level    int    `json:"level"`    // согласуемый уровень
	Comments string `json:"comments"` // комментарий
}

func (v ApproveData) Validate() error {
	if v.Level <= 0 {
		return errors.New("не указан уровень согласования")
	}
	return nil
}

type RejectData struct {
	Level  int    `json:"level"`  // отклоняемый уровень
	Reason string `json:"reason"` // причина отклонения
	Force  bool   `json:"force"`  // отклонить вне очереди
}

func (v RejectData) Validate() error {
	if v.Level <= 0 {
		return errors.New("не указан уровень согласования")
	}
	if v.Reason == "" {
		return errors.New("не указана причина отклонения")
	}
	return nil
}

type CompleteData struct {
	Feedback string `json:"feedback"` // отзыв клиента
	Rating   *int   `json:"rating"`   // оценка клиента 1-5
}

func (v CompleteData) Validate() error {
	if v.Rating != nil && (*v.Rating < 1 || *v.Rating > 5) {
		return errors.New("оценка должна быть в диапазоне от 1 до 5")
	}
	return nil
}

type StatusReasonData struct {
	Reason string `json:"reason"` // причина смены статуса
}

type NoteData struct {
	Text string `json:"text"` // текст заметки
}

func (v NoteData) Validate() error {
	if v.Text == "" {
		return errors.New("текст заметки пуст")
	}
	return nil
}

type MilestoneData struct {
	Name       string     `json:"name"`        // название вехи
	TargetDate *time.Time `json:"target_date"` // плановая дата
}

func (v MilestoneData) Validate() error {
	if v.Name == "" {
		return errors.New("отсутсвует название вехи")
	}
	return nil
}

type RolloverData struct {
	NewEndDate *time.Time `json:"new_end_date"` // дата окончания нового назначения
}

type AssignmentFilter struct {
	apimodels.Pagination
	Statuses     []models.AssignmentStatus `json:"statuses"`      // фильтр по статусам
	ConsultantID string                    `json:"consultant_id"` // фильтр по консультанту
	ClientID     string                    `json:"client_id"`     // фильтр по клиенту
	ProjectID    string                    `json:"project_id"`    // фильтр по проекту
	Code         string                    `json:"code"`          // фильтр по коду
	WithDeleted  bool                      `json:"with_deleted"`  // включить удаленные
}

func (v AssignmentFilter) Validate() error {
	for _, status := range v.Statuses {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	return nil
}
