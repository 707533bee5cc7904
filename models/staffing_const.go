package models

import "github.com/pkg/errors"

type StaffingRequestStatus string

const (
	SRStatusDraft     StaffingRequestStatus = "draft"
	SRStatusOpen      StaffingRequestStatus = "open"
	SRStatusFulfilled StaffingRequestStatus = "fulfilled"
	SRStatusCancelled StaffingRequestStatus = "cancelled"
)

var srStatusHumanName = map[StaffingRequestStatus]string{
	SRStatusDraft:     "Черновик",
	SRStatusOpen:      "Открыта",
	SRStatusFulfilled: "Закрыта назначением",
	SRStatusCancelled: "Отменена",
}

func (s StaffingRequestStatus) ToHuman() string {
	if human, exist := srStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s StaffingRequestStatus) Validate() error {
	if _, exist := srStatusHumanName[s]; !exist {
		return errors.Errorf("неизвестный статус запроса на подбор: %v", s)
	}
	return nil
}

type SRUrgency string

const (
	SRUrgent    SRUrgency = "срочный"
	SRNonUrgent SRUrgency = "несрочный"
)

func (u SRUrgency) Validate() error {
	switch u {
	case SRUrgent, SRNonUrgent, "":
		return nil
	}
	return errors.Errorf("неизвестная срочность: %v", u)
}
