package dbmodels

import (
	"time"

	"github.com/pkg/errors"

	"consulting-crm-backend/models"
)

type License struct {
	BaseSpaceModel
	Status          models.LicenseStatus `gorm:"type:varchar(255)"`
	Plan            string               `gorm:"type:varchar(100)"`
	AssignmentQuota int                  // максимум активных назначений по тарифу, 0 - без ограничений
	StartsAt        *time.Time
	EndsAt          *time.Time
	AutoRenew       bool
}

func (j License) Validate() error {
	if err := j.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if j.Status == "" {
		return errors.New("отсутсвует статус")
	}
	if j.Plan == "" {
		return errors.New("не указан тариф")
	}
	return nil
}
