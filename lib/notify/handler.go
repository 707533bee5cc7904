package notifyprovider

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	consultantstore "consulting-crm-backend/lib/dicts/consultant/store"
	"consulting-crm-backend/lib/smtp"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	AssignmentApproved(spaceID string, rec dbmodels.Assignment)
	AssignmentRejected(spaceID string, rec dbmodels.Assignment, reason string)
}

var Instance Provider

func NewHandler(from string) {
	Instance = &impl{
		consultantStore: consultantstore.NewInstance(db.DB),
		from:            from,
	}
}

type impl struct {
	consultantStore consultantstore.Provider
	from            string
}

func (i impl) getLogger(spaceID, assignmentID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("assignment_id", assignmentID)
}

// уведомления отправляются в фоне и не влияют на результат операции
func (i impl) send(spaceID string, rec dbmodels.Assignment, subject, message string) {
	go func() {
		logger := i.getLogger(spaceID, rec.ID)
		consultantRec, err := i.consultantStore.GetByID(spaceID, rec.ConsultantID)
		if err != nil {
			logger.WithError(err).Error("Ошибка получения консультанта для уведомления")
			return
		}
		if consultantRec == nil || consultantRec.Email == "" {
			logger.Warn("Уведомление не отправлено, у консультанта не указана почта")
			return
		}
		err = smtp.Instance.SendEMail(i.from, consultantRec.Email, message, subject)
		if err != nil {
			logger.WithError(err).Error("Ошибка отправки уведомления")
		}
	}()
}

func (i impl) AssignmentApproved(spaceID string, rec dbmodels.Assignment) {
	message := fmt.Sprintf("Назначение %s (%s) согласовано на всех уровнях", rec.Code, rec.Title)
	i.send(spaceID, rec, "Назначение согласовано", message)
}

func (i impl) AssignmentRejected(spaceID string, rec dbmodels.Assignment, reason string) {
	message := fmt.Sprintf("Назначение %s (%s) отклонено. Причина: %s", rec.Code, rec.Title, reason)
	i.send(spaceID, rec, "Назначение отклонено", message)
}
