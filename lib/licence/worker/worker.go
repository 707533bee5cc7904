package licenseworker

import (
	"context"
	"time"

	"consulting-crm-backend/db"
	licensestore "consulting-crm-backend/lib/licence/store"
	baseworker "consulting-crm-backend/lib/utils/base-worker"
	"consulting-crm-backend/lib/utils/helpers"
	"consulting-crm-backend/models"
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:     *baseworker.NewInstance("LicenseWorker", 15*time.Second, 60*time.Minute),
		licenseStore: licensestore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	licenseStore licensestore.Provider
}

func (i impl) handle(ctx context.Context) {
	// лицензии с окончанием в ближайшие две недели переводим в EXPIRES_SOON
	expiresSoonDate := time.Now().Add(time.Hour * 24 * 14)
	i.updateStatuses(ctx, expiresSoonDate, models.LicenseStatusActive, models.LicenseStatusExpiresSoon)

	// просроченные переводим в EXPIRED
	expiredDate := time.Now()
	i.updateStatuses(ctx, expiredDate, models.LicenseStatusExpiresSoon, models.LicenseStatusExpired)
}

func (i impl) updateStatuses(ctx context.Context, expireTime time.Time, currentStatus, newStatus models.LicenseStatus) {
	logger := i.GetLogger()
	list, err := i.licenseStore.ListToExpired(currentStatus, expireTime)
	if err != nil {
		logger.WithError(err).Errorf("Ошибка получения списка лицензий для перевода в %v", newStatus)
		return
	}
	for _, licence := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		updMap := map[string]interface{}{
			"Status": newStatus,
		}
		err = i.licenseStore.Update(licence.SpaceID, licence.ID, updMap)
		if err != nil {
			logger.
				WithError(err).
				WithField("space_id", licence.SpaceID).
				Errorf("Ошибка перевода статуса лицензии в %v", newStatus)
			continue
		}
	}
}
