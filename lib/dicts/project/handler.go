package projectprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	clientstore "consulting-crm-backend/lib/dicts/client/store"
	projectstore "consulting-crm-backend/lib/dicts/project/store"
	initchecker "consulting-crm-backend/lib/utils/init-checker"
	dictapimodels "consulting-crm-backend/models/api/dict"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.ProjectData) (id string, err error)
	Update(spaceID, id string, request dictapimodels.ProjectData) error
	Get(spaceID, id string) (item dictapimodels.ProjectView, err error)
	List(spaceID, clientID string) (list []dictapimodels.ProjectView, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       projectstore.NewInstance(db.DB),
		clientStore: clientstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"clientStore", instance.clientStore,
	)
	Instance = instance
}

type impl struct {
	store       projectstore.Provider
	clientStore clientstore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.ProjectData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	err = request.Validate()
	if err != nil {
		return "", err
	}
	clientRec, err := i.clientStore.GetByID(spaceID, request.ClientID)
	if err != nil {
		return "", err
	}
	if clientRec == nil {
		return "", errors.New("клиент не найден")
	}
	rec := dbmodels.Project{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		ClientID: request.ClientID,
		Name:     request.Name,
		Code:     request.Code,
		IsActive: true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("project_name", rec.Name).
		WithField("rec_id", id).
		Info("создан проект")
	return id, nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.ProjectData) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	err := request.Validate()
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name": request.Name,
		"code": request.Code,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлен проект")
	return nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.ProjectView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.ProjectView{}, err
	}
	if rec == nil {
		return dictapimodels.ProjectView{}, errors.New("проект не найден")
	}
	return dictapimodels.ProjectConvert(*rec), nil
}

func (i impl) List(spaceID, clientID string) (list []dictapimodels.ProjectView, err error) {
	recList, err := i.store.List(spaceID, clientID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.ProjectView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.ProjectConvert(rec))
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
	logger.Info("удален проект")
	return nil
}
