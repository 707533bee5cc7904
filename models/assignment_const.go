package models

import "github.com/pkg/errors"

type AssignmentStatus string

const (
	AssignmentStatusProposed        AssignmentStatus = "proposed"
	AssignmentStatusPendingApproval AssignmentStatus = "pending_approval"
	AssignmentStatusConfirmed       AssignmentStatus = "confirmed"
	AssignmentStatusActive          AssignmentStatus = "active"
	AssignmentStatusOnHold          AssignmentStatus = "on_hold"
	AssignmentStatusCompleted       AssignmentStatus = "completed"
	AssignmentStatusCancelled       AssignmentStatus = "cancelled"
	AssignmentStatusTerminated      AssignmentStatus = "terminated"
)

var assignmentStatusHumanName = map[AssignmentStatus]string{
	AssignmentStatusProposed:        "Предложено",
	AssignmentStatusPendingApproval: "На согласовании",
	AssignmentStatusConfirmed:       "Согласовано",
	AssignmentStatusActive:          "В работе",
	AssignmentStatusOnHold:          "Приостановлено",
	AssignmentStatusCompleted:       "Завершено",
	AssignmentStatusCancelled:       "Отменено",
	AssignmentStatusTerminated:      "Прекращено",
}

func (s AssignmentStatus) ToHuman() string {
	if human, exist := assignmentStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s AssignmentStatus) Validate() error {
	if _, exist := assignmentStatusHumanName[s]; !exist {
		return errors.Errorf("неизвестный статус назначения: %v", s)
	}
	return nil
}

// таблица допустимых переходов, статус меняется только через нее
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentStatusProposed:        {AssignmentStatusPendingApproval, AssignmentStatusCancelled},
	AssignmentStatusPendingApproval: {AssignmentStatusConfirmed, AssignmentStatusCancelled},
	AssignmentStatusConfirmed:       {AssignmentStatusActive, AssignmentStatusCancelled},
	AssignmentStatusActive:          {AssignmentStatusOnHold, AssignmentStatusCompleted, AssignmentStatusTerminated},
	AssignmentStatusOnHold:          {AssignmentStatusActive, AssignmentStatusTerminated},
	AssignmentStatusCompleted:       {},
	AssignmentStatusCancelled:       {},
	AssignmentStatusTerminated:      {},
}

func (s AssignmentStatus) IsAllowChange(to AssignmentStatus) bool {
	for _, allowed := range assignmentTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s AssignmentStatus) IsTerminal() bool {
	return len(assignmentTransitions[s]) == 0
}

type ApprovalStatus string

const (
	AStatusPending  ApprovalStatus = "pending"
	AStatusApproved ApprovalStatus = "approved"
	AStatusRejected ApprovalStatus = "rejected"
	AStatusSkipped  ApprovalStatus = "skipped"
)

var approvalStatusHumanName = map[ApprovalStatus]string{
	AStatusPending:  "Ожидает решения",
	AStatusApproved: "Согласовано",
	AStatusRejected: "Отклонено",
	AStatusSkipped:  "Пропущено",
}

func (s ApprovalStatus) ToHuman() string {
	if human, exist := approvalStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

type RateType string

const (
	RateTypeHourly RateType = "hourly"
	RateTypeDaily  RateType = "daily"
	RateTypeFixed  RateType = "fixed"
)

func (r RateType) Validate() error {
	switch r {
	case RateTypeHourly, RateTypeDaily, RateTypeFixed:
		return nil
	}
	return errors.Errorf("неизвестный тип ставки: %v", r)
}

type ExtensionStatus string

const (
	ExtStatusPending  ExtensionStatus = "pending"
	ExtStatusApproved ExtensionStatus = "approved"
	ExtStatusDeclined ExtensionStatus = "declined"
)

type MilestoneStatus string

const (
	MilestoneStatusPlanned   MilestoneStatus = "planned"
	MilestoneStatusReached   MilestoneStatus = "reached"
	MilestoneStatusMissed    MilestoneStatus = "missed"
	MilestoneStatusCancelled MilestoneStatus = "cancelled"
)

type AssignmentSource string

const (
	SourceManual          AssignmentSource = "manual"
	SourceStaffingRequest AssignmentSource = "staffing_request"
	SourceRollover        AssignmentSource = "rollover"
)
