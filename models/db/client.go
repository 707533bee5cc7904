package dbmodels

import "github.com/pkg/errors"

type Client struct {
	BaseSpaceModel
	Name          string `gorm:"type:varchar(255)"`
	LegalName     string `gorm:"type:varchar(255)"`
	Industry      string `gorm:"type:varchar(255)"`
	ContactName   string `gorm:"type:varchar(255)"`
	ContactEmail  string `gorm:"type:varchar(255)"`
	ContactPhone  string `gorm:"type:varchar(15)"`
	IsActive      bool
}

func (c Client) Validate() error {
	if err := c.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("отсутсвует название клиента")
	}
	return nil
}

type Project struct {
	BaseSpaceModel
	ClientID string `gorm:"type:varchar(36);index"`
	Client   *Client
	Name     string `gorm:"type:varchar(255)"`
	Code     string `gorm:"type:varchar(50)"`
	IsActive bool
}

func (p Project) Validate() error {
	if err := p.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if p.Name == "" {
		return errors.New("отсутсвует название проекта")
	}
	if p.ClientID == "" {
		return errors.New("отсутсвует ссылка на клиента")
	}
	return nil
}

type Engagement struct {
	BaseSpaceModel
	ClientID    string `gorm:"type:varchar(36);index"`
	Client      *Client
	Name        string `gorm:"type:varchar(255)"`
	Description string
	IsActive    bool
}

func (e Engagement) Validate() error {
	if err := e.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if e.Name == "" {
		return errors.New("отсутсвует название контракта")
	}
	return nil
}
