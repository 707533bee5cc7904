package consultantprovider

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	assignmentstore "consulting-crm-backend/lib/assignment/store"
	consultantstore "consulting-crm-backend/lib/dicts/consultant/store"
	initchecker "consulting-crm-backend/lib/utils/init-checker"
	dictapimodels "consulting-crm-backend/models/api/dict"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.ConsultantData) (id string, err error)
	Update(spaceID, id string, request dictapimodels.ConsultantData) error
	Get(spaceID, id string) (item dictapimodels.ConsultantView, err error)
	FindByName(spaceID, name string) (list []dictapimodels.ConsultantView, err error)
	List(spaceID string) (list []dictapimodels.ConsultantView, err error)
	Delete(spaceID, id string) error
	GetCurrentAllocation(spaceID, id string) (percent float64, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:           consultantstore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"assignmentStore", instance.assignmentStore,
	)
	Instance = instance
}

type impl struct {
	store           consultantstore.Provider
	assignmentStore assignmentstore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.ConsultantData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	err = request.Validate()
	if err != nil {
		return "", err
	}
	rec := dbmodels.Consultant{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Code:        request.Code,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Email:       request.Email,
		Grade:       request.Grade,
		Skills:      pq.StringArray(request.Skills),
		WeeklyHours: request.WeeklyHours,
		IsActive:    true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("consultant_name", rec.GetFullName()).
		WithField("rec_id", id).
		Info("создан консультант")
	return id, nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.ConsultantData) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	err := request.Validate()
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"code":         request.Code,
		"first_name":   request.FirstName,
		"last_name":    request.LastName,
		"email":        request.Email,
		"grade":        request.Grade,
		"skills":       pq.StringArray(request.Skills),
		"weekly_hours": request.WeeklyHours,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлен консультант")
	return nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.ConsultantView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.ConsultantView{}, err
	}
	if rec == nil {
		return dictapimodels.ConsultantView{}, errors.New("консультант не найден")
	}
	return dictapimodels.ConsultantConvert(*rec), nil
}

func (i impl) FindByName(spaceID, name string) (list []dictapimodels.ConsultantView, err error) {
	recList, err := i.store.FindByName(spaceID, name)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.ConsultantView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.ConsultantConvert(rec))
	}
	return result, nil
}

func (i impl) List(spaceID string) (list []dictapimodels.ConsultantView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.ConsultantView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.ConsultantConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(spaceID, id string) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	err := i.store.Delete(spaceID, id)
	if err != nil {
		return err
	}
	logger.Info("удален консультант")
	return nil
}

// GetCurrentAllocation возвращает суммарную загрузку по живым назначениям
func (i impl) GetCurrentAllocation(spaceID, id string) (percent float64, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, errors.New("консультант не найден")
	}
	return i.assignmentStore.SumAllocation(spaceID, id)
}
