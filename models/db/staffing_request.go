package dbmodels

import (
	"time"

	"github.com/pkg/errors"

	"consulting-crm-backend/models"
)

type StaffingRequest struct {
	BaseSpaceModel
	AuthorID     string `gorm:"type:varchar(36)"`
	Author       *SpaceUser `gorm:"foreignKey:AuthorID"`
	ClientID     string     `gorm:"type:varchar(36);index"`
	Client       *Client
	ProjectID    *string `gorm:"type:varchar(36)"`
	Project      *Project
	RoleTitle    string `gorm:"type:varchar(255)"`
	Grade        string `gorm:"type:varchar(100)"`
	Requirements string

	RequestedAllocation float64 // процент загрузки
	RequestedStart      *time.Time
	RequestedEnd        *time.Time
	Billable            bool
	RateType            models.RateType `gorm:"type:varchar(50)"`
	ClientRate          float64
	ClientRateCurrency  string `gorm:"type:varchar(3)"`
	CostRate            float64
	CostRateCurrency    string `gorm:"type:varchar(3)"`
	BudgetAllocated     float64
	EstimatedHours      float64

	Urgency models.SRUrgency              `gorm:"type:varchar(100)"`
	Status  models.StaffingRequestStatus  `gorm:"type:varchar(50);index"`
}

func (r StaffingRequest) Validate() error {
	if err := r.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if r.ClientID == "" {
		return errors.New("отсутсвует ссылка на клиента")
	}
	if r.RoleTitle == "" {
		return errors.New("отсутсвует название роли")
	}
	if r.RequestedAllocation < 0 || r.RequestedAllocation > 100 {
		return errors.New("процент загрузки должен быть в диапазоне от 0 до 100")
	}
	return nil
}
