package staffingreqstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	staffingapimodels "consulting-crm-backend/models/api/staffing"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.StaffingRequest) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.StaffingRequest, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	List(spaceID string, filter staffingapimodels.StaffingRequestFilter, page, limit int) (list []dbmodels.StaffingRequest, err error)
	ListCount(spaceID string, filter staffingapimodels.StaffingRequestFilter) (rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StaffingRequest) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.StaffingRequest, error) {
	rec := dbmodels.StaffingRequest{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Author").
		Preload("Client").
		Preload("Project").
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
	tx := i.db.
		Model(&dbmodels.StaffingRequest{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Delete(&dbmodels.StaffingRequest{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) applyFilter(tx *gorm.DB, filter staffingapimodels.StaffingRequestFilter) *gorm.DB {
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}
	if filter.ClientID != "" {
		tx = tx.Where("client_id = ?", filter.ClientID)
	}
	return tx
}

func (i impl) List(spaceID string, filter staffingapimodels.StaffingRequestFilter, page, limit int) (list []dbmodels.StaffingRequest, err error) {
	list = []dbmodels.StaffingRequest{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Preload("Author").
		Preload("Client").
		Preload("Project").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit)
	tx = i.applyFilter(tx, filter)
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(spaceID string, filter staffingapimodels.StaffingRequestFilter) (rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.StaffingRequest{}).
		Where("space_id = ?", spaceID)
	tx = i.applyFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}
