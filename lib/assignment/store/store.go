package assignmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"consulting-crm-backend/models"
	assignmentapimodels "consulting-crm-backend/models/api/assignment"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Assignment) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Assignment, err error)
	GetByCode(spaceID, code string) (rec *dbmodels.Assignment, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	UpdateWithVersion(spaceID, id string, version int, updMap map[string]interface{}) (conflict bool, err error)
	List(spaceID string, filter assignmentapimodels.AssignmentFilter, page, limit int) (list []dbmodels.Assignment, err error)
	ListCount(spaceID string, filter assignmentapimodels.AssignmentFilter) (rowCount int64, err error)
	SumAllocation(spaceID, consultantID string) (total float64, err error)
	CountAlive(spaceID string) (rowCount int64, err error)

	AddHistory(rec dbmodels.AssignmentStatusHistory) error
	AddApprovalLevel(rec dbmodels.AssignmentApprovalLevel) (id string, err error)
	UpdateApprovalLevel(spaceID, id string, updMap map[string]interface{}) error
	AddExtension(rec dbmodels.AssignmentExtension) (id string, err error)
	GetExtension(spaceID, id string) (rec *dbmodels.AssignmentExtension, err error)
	UpdateExtension(spaceID, id string, updMap map[string]interface{}) error
	AddMilestone(rec dbmodels.AssignmentMilestone) (id string, err error)
	AddNote(rec dbmodels.AssignmentNote) (id string, err error)
	AddDocument(rec dbmodels.AssignmentDocument) (id string, err error)
	AddTimeEntry(rec dbmodels.AssignmentTimeEntry) (id string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Assignment) (id string, err error) {
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

func (i impl) GetByID(spaceID, id string) (*dbmodels.Assignment, error) {
	rec := dbmodels.Assignment{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload(clause.Associations).
		Preload("ApprovalLevels", func(db *gorm.DB) *gorm.DB {
			return db.Order("level ASC")
		}).
		Preload("ApprovalLevels.Approver").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Notes.Author").
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

func (i impl) GetByCode(spaceID, code string) (*dbmodels.Assignment, error) {
	rec := dbmodels.Assignment{}
	err := i.db.
		Where("code = ?", code).
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
	tx := i.db.
		Model(&dbmodels.Assignment{}).
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

// UpdateWithVersion обновляет запись только при совпадении токена версии,
// признак conflict означает что запись изменилась после чтения
func (i impl) UpdateWithVersion(spaceID, id string, version int, updMap map[string]interface{}) (conflict bool, err error) {
	if len(updMap) == 0 {
		return false, nil
	}
	updMap["Version"] = version + 1
	tx := i.db.
		Model(&dbmodels.Assignment{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("version = ?", version).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return true, nil
	}
	return false, nil
}

func (i impl) applyFilter(tx *gorm.DB, filter assignmentapimodels.AssignmentFilter) *gorm.DB {
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}
	if filter.ConsultantID != "" {
		tx = tx.Where("consultant_id = ?", filter.ConsultantID)
	}
	if filter.ClientID != "" {
		tx = tx.Where("client_id = ?", filter.ClientID)
	}
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Code != "" {
		tx = tx.Where("code = ?", filter.Code)
	}
	if !filter.WithDeleted {
		tx = tx.Where("is_deleted = false")
	}
	return tx
}

func (i impl) List(spaceID string, filter assignmentapimodels.AssignmentFilter, page, limit int) (list []dbmodels.Assignment, err error) {
	list = []dbmodels.Assignment{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Preload("Consultant").
		Preload("Client").
		Preload("Project").
		Preload("Engagement").
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

func (i impl) ListCount(spaceID string, filter assignmentapimodels.AssignmentFilter) (rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.Assignment{}).
		Where("space_id = ?", spaceID)
	tx = i.applyFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

// SumAllocation суммирует процент загрузки по активным и согласованным назначениям
func (i impl) SumAllocation(spaceID, consultantID string) (total float64, err error) {
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Select("COALESCE(SUM(allocation_percent), 0)").
		Where("space_id = ?", spaceID).
		Where("consultant_id = ?", consultantID).
		Where("is_deleted = false").
		Where("status IN (?)", []models.AssignmentStatus{
			models.AssignmentStatusConfirmed,
			models.AssignmentStatusActive,
		}).
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (i impl) CountAlive(spaceID string) (rowCount int64, err error) {
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Where("space_id = ?", spaceID).
		Where("is_deleted = false").
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) AddHistory(rec dbmodels.AssignmentStatusHistory) error {
	return i.db.Create(&rec).Error
}

func (i impl) AddApprovalLevel(rec dbmodels.AssignmentApprovalLevel) (id string, err error) {
	err = i.db.
		Omit("Approver").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) UpdateApprovalLevel(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.AssignmentApprovalLevel{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) AddExtension(rec dbmodels.AssignmentExtension) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetExtension(spaceID, id string) (*dbmodels.AssignmentExtension, error) {
	rec := dbmodels.AssignmentExtension{}
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

func (i impl) UpdateExtension(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.AssignmentExtension{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) AddMilestone(rec dbmodels.AssignmentMilestone) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) AddNote(rec dbmodels.AssignmentNote) (id string, err error) {
	err = i.db.
		Omit("Author").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) AddDocument(rec dbmodels.AssignmentDocument) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) AddTimeEntry(rec dbmodels.AssignmentTimeEntry) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
