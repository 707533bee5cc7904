package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "consulting-crm-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	migrations := []struct {
		name  string
		model interface{}
	}{
		{"Space", &dbmodels.Space{}},
		{"SpaceUser", &dbmodels.SpaceUser{}},
		{"Client", &dbmodels.Client{}},
		{"Project", &dbmodels.Project{}},
		{"Engagement", &dbmodels.Engagement{}},
		{"Consultant", &dbmodels.Consultant{}},
		{"StaffingRequest", &dbmodels.StaffingRequest{}},
		{"Assignment", &dbmodels.Assignment{}},
		{"AssignmentStatusHistory", &dbmodels.AssignmentStatusHistory{}},
		{"AssignmentApprovalLevel", &dbmodels.AssignmentApprovalLevel{}},
		{"AssignmentExtension", &dbmodels.AssignmentExtension{}},
		{"AssignmentMilestone", &dbmodels.AssignmentMilestone{}},
		{"AssignmentNote", &dbmodels.AssignmentNote{}},
		{"AssignmentDocument", &dbmodels.AssignmentDocument{}},
		{"AssignmentTimeEntry", &dbmodels.AssignmentTimeEntry{}},
		{"License", &dbmodels.License{}},
	}
	for _, m := range migrations {
		if err := DB.AutoMigrate(m.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %v", m.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
