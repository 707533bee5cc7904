package clientprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	clientstore "consulting-crm-backend/lib/dicts/client/store"
	initchecker "consulting-crm-backend/lib/utils/init-checker"
	dictapimodels "consulting-crm-backend/models/api/dict"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.ClientData) (id string, err error)
	Update(spaceID, id string, request dictapimodels.ClientData) error
	Get(spaceID, id string) (item dictapimodels.ClientView, err error)
	FindByName(spaceID, name string) (list []dictapimodels.ClientView, err error)
	List(spaceID string) (list []dictapimodels.ClientView, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: clientstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store clientstore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.ClientData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	err = request.Validate()
	if err != nil {
		return "", err
	}
	rec := dbmodels.Client{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:         request.Name,
		LegalName:    request.LegalName,
		Industry:     request.Industry,
		ContactName:  request.ContactName,
		ContactEmail: request.ContactEmail,
		ContactPhone: request.ContactPhone,
		IsActive:     true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("client_name", rec.Name).
		WithField("rec_id", id).
		Info("создан клиент")
	return id, nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.ClientData) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	err := request.Validate()
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":          request.Name,
		"legal_name":    request.LegalName,
		"industry":      request.Industry,
		"contact_name":  request.ContactName,
		"contact_email": request.ContactEmail,
		"contact_phone": request.ContactPhone,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлен клиент")
	return nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.ClientView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.ClientView{}, err
	}
	if rec == nil {
		return dictapimodels.ClientView{}, errors.New("клиент не найден")
	}
	return dictapimodels.ClientConvert(*rec), nil
}

func (i impl) FindByName(spaceID, name string) (list []dictapimodels.ClientView, err error) {
	recList, err := i.store.FindByName(spaceID, name)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.ClientView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.ClientConvert(rec))
	}
	return result, nil
}

func (i impl) List(spaceID string) (list []dictapimodels.ClientView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.ClientView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.ClientConvert(rec))
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
	logger.Info("удален клиент")
	return nil
}
