package dbmodels

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type Consultant struct {
	BaseSpaceModel
	Code          string `gorm:"type:varchar(50);index"`
	FirstName     string `gorm:"type:varchar(150)"`
	LastName      string `gorm:"type:varchar(150)"`
	Email         string `gorm:"type:varchar(255)"`
	Grade         string `gorm:"type:varchar(100)"`
	Skills        pq.StringArray `gorm:"type:text[]"`
	WeeklyHours   float64        // нормативная недельная загрузка
	IsActive      bool
}

func (c Consultant) GetFullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

func (c Consultant) Validate() error {
	if err := c.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if c.FirstName == "" || c.LastName == "" {
		return errors.New("отсутсвует имя консультанта")
	}
	return nil
}
