package dbmodels

import (
	"regexp"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"consulting-crm-backend/models"
)

var assignmentCodeRe = regexp.MustCompile(`^ASN-[0-9A-Za-z]+$`)

type Assignment struct {
	BaseSpaceModel
	Code string `gorm:"type:varchar(50);index:idx_assignment_code,unique"`

	ConsultantID string `gorm:"type:varchar(36);index"`
	Consultant   *Consultant
	ClientID     string `gorm:"type:varchar(36);index"`
	Client       *Client
	ProjectID    *string `gorm:"type:varchar(36)"`
	Project      *Project
	EngagementID *string `gorm:"type:varchar(36)"`
	Engagement   *Engagement

	Title string `gorm:"type:varchar(255)"` // роль консультанта на проекте

	// сроки
	ProposedStart *time.Time
	ProposedEnd   *time.Time
	ActualStart   *time.Time
	ActualEnd     *time.Time

	// загрузка
	AllocationPercent float64 // 0-100, доля недельной загрузки
	WeeklyHours       float64
	DailyHours        float64

	// биллинг
	Billable           bool
	RateType           models.RateType `gorm:"type:varchar(50)"`
	ClientRate         float64
	ClientRateCurrency string `gorm:"type:varchar(3)"`
	CostRate           float64
	CostRateCurrency   string `gorm:"type:varchar(3)"`
	BudgetAllocated    float64
	BudgetSpent        float64
	BudgetRemaining    float64 // всегда BudgetAllocated - BudgetSpent, пересчитывается при сохранении
	ExpensesAllocated  float64
	ExpensesSpent      float64 // ведется отдельно, с бюджетом не связано

	// учет времени
	EstimatedHours         float64
	TotalHoursLogged       float64
	BillableHoursLogged    float64
	NonBillableHoursLogged float64
	RemainingHours         float64 // всегда EstimatedHours - TotalHoursLogged, может быть отрицательным
	LastTimeEntry          *time.Time

	// согласование
	CurrentLevel    int
	FinalApproved   bool
	FinalApproverID *string `gorm:"type:varchar(36)"`
	FinalApprovedAt *time.Time

	Status          models.AssignmentStatus `gorm:"type:varchar(50);index"`
	RejectionReason string

	// оценка клиента при завершении
	SatisfactionRating   *int
	SatisfactionFeedback string
	SatisfactionBy       string `gorm:"type:varchar(36)"`
	SatisfactionAt       *time.Time

	Source               models.AssignmentSource `gorm:"type:varchar(50)"`
	PreviousAssignmentID *string                 `gorm:"type:varchar(36)"`
	StaffingRequestID    *string                 `gorm:"type:varchar(36)"`

	IsDeleted   bool `gorm:"index"`
	DeletedTime *time.Time
	DeletedBy   string `gorm:"type:varchar(36)"`

	// токен оптимистичной блокировки, инкрементируется при каждом изменении
	Version int `gorm:"not null;default:0"`

	StatusHistory  []AssignmentStatusHistory  `gorm:"foreignKey:AssignmentID"`
	ApprovalLevels []AssignmentApprovalLevel  `gorm:"foreignKey:AssignmentID"`
	Extensions     []AssignmentExtension      `gorm:"foreignKey:AssignmentID"`
	Milestones     []AssignmentMilestone      `gorm:"foreignKey:AssignmentID"`
	Notes          []AssignmentNote           `gorm:"foreignKey:AssignmentID"`
	Documents      []AssignmentDocument       `gorm:"foreignKey:AssignmentID"`
	TimeEntries    []AssignmentTimeEntry      `gorm:"foreignKey:AssignmentID"`
}

func (a *Assignment) BeforeSave(tx *gorm.DB) error {
	a.Recalc()
	return nil
}

// Recalc пересчитывает производные поля бюджета и времени
func (a *Assignment) Recalc() {
	a.BudgetRemaining = a.BudgetAllocated - a.BudgetSpent
	a.RemainingHours = a.EstimatedHours - a.TotalHoursLogged
}

func (a Assignment) Validate() error {
	if err := a.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if !assignmentCodeRe.MatchString(a.Code) {
		return errors.Errorf("некорректный код назначения: %v", a.Code)
	}
	if a.ConsultantID == "" {
		return errors.New("отсутсвует ссылка на консультанта")
	}
	if a.ClientID == "" {
		return errors.New("отсутсвует ссылка на клиента")
	}
	if a.AllocationPercent < 0 || a.AllocationPercent > 100 {
		return errors.New("процент загрузки должен быть в диапазоне от 0 до 100")
	}
	if a.Billable {
		if err := a.RateType.Validate(); err != nil {
			return err
		}
	}
	return a.ValidateBilling()
}

// ValidateBilling запрещает смешивание валют клиентской и внутренней ставок
func (a Assignment) ValidateBilling() error {
	if a.ClientRateCurrency != "" && a.CostRateCurrency != "" &&
		a.ClientRateCurrency != a.CostRateCurrency {
		return errors.Errorf("валюты ставок не совпадают: %v и %v", a.ClientRateCurrency, a.CostRateCurrency)
	}
	return nil
}

// GetCurrentApprovalLevel возвращает первый несогласованный уровень
// и признак того, что он последний в цепочке
func (a Assignment) GetCurrentApprovalLevel() (isLast bool, level *AssignmentApprovalLevel) {
	pending := 0
	var first *AssignmentApprovalLevel
	for idx := range a.ApprovalLevels {
		lvl := &a.ApprovalLevels[idx]
		if lvl.Status == models.AStatusPending {
			pending++
			if first == nil || lvl.Level < first.Level {
				first = lvl
			}
		}
	}
	return pending <= 1, first
}

func (a Assignment) AllLevelsApproved() bool {
	if len(a.ApprovalLevels) == 0 {
		return false
	}
	for _, lvl := range a.ApprovalLevels {
		if lvl.Status != models.AStatusApproved {
			return false
		}
	}
	return true
}

// ApplyTime накапливает часы и, для оплачиваемого времени со ставкой,
// списание бюджета по формуле часы * клиентская ставка
func (a *Assignment) ApplyTime(hours float64, billable bool, entryDate time.Time) error {
	if hours <= 0 {
		return errors.New("количество часов должно быть больше нуля")
	}
	// на неоплачиваемом назначении время учитывается только как неоплачиваемое
	if !a.Billable {
		billable = false
	}
	a.TotalHoursLogged += hours
	if billable {
		a.BillableHoursLogged += hours
		if a.ClientRate > 0 {
			a.BudgetSpent += hours * a.ClientRate
		}
	} else {
		a.NonBillableHoursLogged += hours
	}
	a.LastTimeEntry = &entryDate
	a.Recalc()
	return nil
}

// ApplyExtension фиксирует запись о продлении и сразу двигает плановую дату
// окончания; статус записи носит справочный характер
func (a *Assignment) ApplyExtension(newEnd time.Time, reason, requesterID string) AssignmentExtension {
	ext := AssignmentExtension{
		BaseSpaceModel: BaseSpaceModel{SpaceID: a.SpaceID},
		AssignmentID:   a.ID,
		NewEndDate:     newEnd,
		Reason:         reason,
		RequesterID:    requesterID,
		Status:         models.ExtStatusPending,
	}
	if a.ProposedEnd != nil {
		ext.OriginalEndDate = *a.ProposedEnd
	} else if a.ActualEnd != nil {
		ext.OriginalEndDate = *a.ActualEnd
	}
	end := newEnd
	a.ProposedEnd = &end
	return ext
}

type AssignmentStatusHistory struct {
	BaseSpaceModel
	AssignmentID string                  `gorm:"type:varchar(36);index"`
	FromStatus   models.AssignmentStatus `gorm:"type:varchar(50)"`
	ToStatus     models.AssignmentStatus `gorm:"type:varchar(50)"`
	ChangedBy    string                  `gorm:"type:varchar(36)"`
	Reason       string
}

type AssignmentApprovalLevel struct {
	BaseSpaceModel
	AssignmentID string `gorm:"type:varchar(36);index"`
	Level        int
	ApproverID   string `gorm:"type:varchar(36)"`
	Approver     *SpaceUser `gorm:"foreignKey:ApproverID"`
	Status       models.ApprovalStatus `gorm:"type:varchar(50)"`
	Comments     string
	DecidedAt    *time.Time
}

type AssignmentExtension struct {
	BaseSpaceModel
	AssignmentID    string `gorm:"type:varchar(36);index"`
	OriginalEndDate time.Time
	NewEndDate      time.Time
	Reason          string
	RequesterID     string `gorm:"type:varchar(36)"`
	ApproverID      string `gorm:"type:varchar(36)"`
	Status          models.ExtensionStatus `gorm:"type:varchar(50)"`
	DecidedAt       *time.Time
}

type AssignmentMilestone struct {
	BaseSpaceModel
	AssignmentID string `gorm:"type:varchar(36);index"`
	Name         string `gorm:"type:varchar(255)"`
	TargetDate   *time.Time
	ActualDate   *time.Time
	Status       models.MilestoneStatus `gorm:"type:varchar(50)"`
}

type AssignmentNote struct {
	BaseSpaceModel
	AssignmentID string `gorm:"type:varchar(36);index"`
	AuthorID     string `gorm:"type:varchar(36)"`
	Author       *SpaceUser `gorm:"foreignKey:AuthorID"`
	Text         string
}

type AssignmentDocument struct {
	BaseSpaceModel
	AssignmentID string `gorm:"type:varchar(36);index"`
	UploadedBy   string `gorm:"type:varchar(36)"`
	FileName     string `gorm:"type:varchar(255)"`
	FileID       string `gorm:"type:varchar(36)"` // ключ объекта в S3
	Size         int64
}

type AssignmentTimeEntry struct {
	BaseSpaceModel
	AssignmentID string `gorm:"type:varchar(36);index"`
	ConsultantID string `gorm:"type:varchar(36);index"`
	ClientID     string `gorm:"type:varchar(36);index"`
	EntryDate    time.Time `gorm:"index"`
	Hours        float64
	Billable     bool
	Description  string
	LoggedBy     string `gorm:"type:varchar(36)"`
}

func (a *Assignment) AfterDelete(tx *gorm.DB) (err error) {
	if a.ID == "" {
		return nil
	}
	for _, child := range []interface{}{
		&AssignmentStatusHistory{}, &AssignmentApprovalLevel{}, &AssignmentExtension{},
		&AssignmentMilestone{}, &AssignmentNote{}, &AssignmentDocument{}, &AssignmentTimeEntry{},
	} {
		tx.Where("assignment_id = ?", a.ID).Delete(child)
	}
	return
}
