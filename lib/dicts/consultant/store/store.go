package consultantstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Consultant) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Consultant, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	FindByName(spaceID, name string) (list []dbmodels.Consultant, err error)
	List(spaceID string) (list []dbmodels.Consultant, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Consultant) (id string, err error) {
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

func (i impl) GetByID(spaceID, id string) (*dbmodels.Consultant, error) {
	rec := dbmodels.Consultant{}
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

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Consultant{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Delete(&dbmodels.Consultant{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) FindByName(spaceID, name string) (list []dbmodels.Consultant, err error) {
	list = []dbmodels.Consultant{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("lower(first_name || ' ' || last_name) LIKE lower(?)", "%"+name+"%").
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

func (i impl) List(spaceID string) (list []dbmodels.Consultant, err error) {
	list = []dbmodels.Consultant{}
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
