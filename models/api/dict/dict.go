package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "consulting-crm-backend/models/db"
)

type ClientData struct {
	Name         string `json:"name"`          // название клиента
	LegalName    string `json:"legal_name"`    // юридическое название
	Industry     string `json:"industry"`      // отрасль
	ContactName  string `json:"contact_name"`  // контактное лицо
	ContactEmail string `json:"contact_email"` // почта контактного лица
	ContactPhone string `json:"contact_phone"` // телефон контактного лица
}

func (v ClientData) Validate() error {
	if v.Name == "" {
		return errors.New("отсутсвует название клиента")
	}
	return nil
}

type ClientView struct {
	ClientData
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

func ClientConvert(rec dbmodels.Client) ClientView {
	return ClientView{
		ClientData: ClientData{
			Name:         rec.Name,
			LegalName:    rec.LegalName,
			Industry:     rec.Industry,
			ContactName:  rec.ContactName,
			ContactEmail: rec.ContactEmail,
			ContactPhone: rec.ContactPhone,
		},
		ID:       rec.ID,
		IsActive: rec.IsActive,
	}
}

type ConsultantData struct {
	Code        string   `json:"code"`         // табельный код
	FirstName   string   `json:"first_name"`   // имя
	LastName    string   `json:"last_name"`    // фамилия
	Email       string   `json:"email"`        // почта
	Grade       string   `json:"grade"`        // грейд
	Skills      []string `json:"skills"`       // навыки
	WeeklyHours float64  `json:"weekly_hours"` // нормативная недельная загрузка
}

func (v ConsultantData) Validate() error {
	if v.FirstName == "" || v.LastName == "" {
		return errors.New("отсутсвует имя консультанта")
	}
	return nil
}

type ConsultantFindData struct {
	Name string `json:"name"` // часть имени для поиска
}

type ConsultantView struct {
	ConsultantData
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

func ConsultantConvert(rec dbmodels.Consultant) ConsultantView {
	return ConsultantView{
		ConsultantData: ConsultantData{
			Code:        rec.Code,
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			Email:       rec.Email,
			Grade:       rec.Grade,
			Skills:      []string(rec.Skills),
			WeeklyHours: rec.WeeklyHours,
		},
		ID:       rec.ID,
		IsActive: rec.IsActive,
	}
}

type ProjectData struct {
	ClientID string `json:"client_id"` // ид клиента
	Name     string `json:"name"`      // название проекта
	Code     string `json:"code"`      // код проекта
}

func (v ProjectData) Validate() error {
	if v.Name == "" {
		return errors.New("отсутсвует название проекта")
	}
	if v.ClientID == "" {
		return errors.New("отсутсвует ссылка на клиента")
	}
	return nil
}

type ProjectView struct {
	ProjectData
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	IsActive   bool   `json:"is_active"`
}

func ProjectConvert(rec dbmodels.Project) ProjectView {
	result := ProjectView{
		ProjectData: ProjectData{
			ClientID: rec.ClientID,
			Name:     rec.Name,
			Code:     rec.Code,
		},
		ID:       rec.ID,
		IsActive: rec.IsActive,
	}
	if rec.Client != nil {
		result.ClientName = rec.Client.Name
	}
	return result
}

type EngagementData struct {
	ClientID    string `json:"client_id"`   // ид клиента
	Name        string `json:"name"`        // название контракта
	Description string `json:"description"` // описание
}

func (v EngagementData) Validate() error {
	if v.Name == "" {
		return errors.New("отсутсвует название контракта")
	}
	if v.ClientID == "" {
		return errors.New("отсутсвует ссылка на клиента")
	}
	return nil
}

type EngagementView struct {
	EngagementData
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	IsActive   bool   `json:"is_active"`
}

func EngagementConvert(rec dbmodels.Engagement) EngagementView {
	result := EngagementView{
		EngagementData: EngagementData{
			ClientID:    rec.ClientID,
			Name:        rec.Name,
			Description: rec.Description,
		},
		ID:       rec.ID,
		IsActive: rec.IsActive,
	}
	if rec.Client != nil {
		result.ClientName = rec.Client.Name
	}
	return result
}
