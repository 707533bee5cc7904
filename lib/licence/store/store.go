package licensestore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"consulting-crm-backend/models"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.License) (id string, err error)
	GetBySpace(spaceID string) (rec *dbmodels.License, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	ListToExpired(status models.LicenseStatus, expireTime time.Time) (list []dbmodels.License, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.License) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetBySpace(spaceID string) (*dbmodels.License, error) {
	rec := dbmodels.License{}
	err := i.db.
		Where("space_id = ?", spaceID).
		Order("created_at DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.License{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListToExpired(status models.LicenseStatus, expireTime time.Time) (list []dbmodels.License, err error) {
	list = []dbmodels.License{}
	err = i.db.
		Where("status = ?", status).
		Where("ends_at IS NOT NULL").
		Where("ends_at <= ?", expireTime).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
