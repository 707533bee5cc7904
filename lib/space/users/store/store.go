package spaceusersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.SpaceUser) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.SpaceUser, err error)
	GetByEmail(spaceID, email string) (rec *dbmodels.SpaceUser, err error)
	List(spaceID string) (list []dbmodels.SpaceUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SpaceUser) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.SpaceUser, error) {
	rec := dbmodels.SpaceUser{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
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

func (i impl) GetByEmail(spaceID, email string) (*dbmodels.SpaceUser, error) {
	rec := dbmodels.SpaceUser{}
	err := i.db.
		Where("lower(email) = lower(?)", email).
		Where("space_id = ?", spaceID).
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

func (i impl) List(spaceID string) (list []dbmodels.SpaceUser, err error) {
	list = []dbmodels.SpaceUser{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Order("last_name ASC").
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
