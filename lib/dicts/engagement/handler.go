package engagementprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	clientstore "consulting-crm-backend/lib/dicts/client/store"
	engagementstore "consulting-crm-backend/lib/dicts/engagement/store"
	initchecker "consulting-crm-backend/lib/utils/init-checker"
	dictapimodels "consulting-crm-backend/models/api/dict"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.EngagementData) (id string, err error)
	Update(spaceID, id string, request dictapimodels.EngagementData) error
	Get(spaceID, id string) (item dictapimodels.EngagementView, err error)
	List(spaceID, clientID string) (list []dictapimodels.EngagementView, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       engagementstore.NewInstance(db.DB),
		clientStore: clientstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"clientStore", instance.clientStore,
	)
	Instance = instance
}

type impl struct {
	store       engagementstore.Provider
	clientStore clientstore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.EngagementData) (id string, err error) {
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
	rec := dbmodels.Engagement{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		ClientID:    request.ClientID,
		Name:        request.Name,
		Description: request.Description,
		IsActive:    true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("engagement_name", rec.Name).
		WithField("rec_id", id).
		Info("создан контракт")
	return id, nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.EngagementData) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	err := request.Validate()
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":        request.Name,
		"description": request.Description,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлен контракт")
	return nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.EngagementView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.EngagementView{}, err
	}
	if rec == nil {
		return dictapimodels.EngagementView{}, errors.New("контракт не найден")
	}
	return dictapimodels.EngagementConvert(*rec), nil
}

func (i impl) List(spaceID, clientID string) (list []dictapimodels.EngagementView, err error) {
	recList, err := i.store.List(spaceID, clientID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.EngagementView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.EngagementConvert(rec))
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
	logger.Info("удален контракт")
	return nil
}
