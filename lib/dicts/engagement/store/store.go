package engagementstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Engagement) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Engagement, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	List(spaceID, clientID string) (list []dbmodels.Engagement, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Engagement) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Omit("Client").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Engagement, error) {
	rec := dbmodels.Engagement{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Client").
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
		Model(&dbmodels.Engagement{}).
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
		Delete(&dbmodels.Engagement{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(spaceID, clientID string) (list []dbmodels.Engagement, err error) {
	list = []dbmodels.Engagement{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Preload("Client").
		Order("name ASC")
	if clientID != "" {
		tx = tx.Where("client_id = ?", clientID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
