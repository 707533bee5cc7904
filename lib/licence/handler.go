package licenceprovider

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	assignmentstore "consulting-crm-backend/lib/assignment/store"
	licensestore "consulting-crm-backend/lib/licence/store"
	"consulting-crm-backend/models"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	// AllowCreate проверяет статус лицензии и квоту на назначения
	AllowCreate(spaceID string) (hMsg string, ok bool, err error)
	GetSpaceLicense(spaceID string) (rec *dbmodels.License, err error)
	EnsureLicense(spaceID string) (id string, err error)
}

var Instance Provider

type Config struct {
	DefaultPlan  string
	DefaultQuota int
	PeriodDays   int
}

func NewHandler(cfg Config) {
	Instance = &impl{
		licenseStore:    licensestore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
		cfg:             cfg,
	}
}

type impl struct {
	licenseStore    licensestore.Provider
	assignmentStore assignmentstore.Provider
	cfg             Config
}

func (i *impl) AllowCreate(spaceID string) (hMsg string, ok bool, err error) {
	rec, err := i.licenseStore.GetBySpace(spaceID)
	if err != nil {
		return "", false, err
	}
	if rec == nil {
		return "лицензия не найдена", false, nil
	}
	if !rec.Status.AllowCreate() {
		return fmt.Sprintf("лицензия в статусе %v", rec.Status.ToHuman()), false, nil
	}
	if rec.AssignmentQuota > 0 {
		count, err := i.assignmentStore.CountAlive(spaceID)
		if err != nil {
			return "", false, err
		}
		if count >= int64(rec.AssignmentQuota) {
			return fmt.Sprintf("исчерпана квота назначений по тарифу (%v)", rec.AssignmentQuota), false, nil
		}
	}
	return "", true, nil
}

func (i *impl) GetSpaceLicense(spaceID string) (*dbmodels.License, error) {
	rec, err := i.licenseStore.GetBySpace(spaceID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("лицензия не найдена")
	}
	return rec, nil
}

// EnsureLicense выдает пространству лицензию с тарифом по умолчанию, если ее еще нет
func (i *impl) EnsureLicense(spaceID string) (id string, err error) {
	rec, err := i.licenseStore.GetBySpace(spaceID)
	if err != nil {
		return "", err
	}
	if rec != nil {
		return rec.ID, nil
	}
	now := time.Now()
	endsAt := now.Add(time.Hour * 24 * time.Duration(i.cfg.PeriodDays))
	id, err = i.licenseStore.Create(dbmodels.License{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Status:          models.LicenseStatusActive,
		Plan:            i.cfg.DefaultPlan,
		AssignmentQuota: i.cfg.DefaultQuota,
		StartsAt:        &now,
		EndsAt:          &endsAt,
	})
	if err != nil {
		return "", err
	}
	log.
		WithField("space_id", spaceID).
		WithField("license_plan", i.cfg.DefaultPlan).
		Info("выдана лицензия по умолчанию")
	return id, nil
}
