package assignmentapimodels

import (
	"time"

	"consulting-crm-backend/models"
	dbmodels "consulting-crm-backend/models/db"
)

type AssignmentView struct {
	AssignmentData
	ID             string                  `json:"id"`
	Code           string                  `json:"code"`
	CreationDate   time.Time               `json:"creation_date"`
	Status         models.AssignmentStatus `json:"status"`
	StatusName     string                  `json:"status_name"`
	ConsultantName string                  `json:"consultant_name"`
	ClientName     string                  `json:"client_name"`
	ProjectName    string                  `json:"project_name"`
	EngagementName string                  `json:"engagement_name"`

	ActualStart *time.Time `json:"actual_start"`
	ActualEnd   *time.Time `json:"actual_end"`

	BudgetSpent     float64 `json:"budget_spent"`
	BudgetRemaining float64 `json:"budget_remaining"`
	ExpensesSpent   float64 `json:"expenses_spent"`

	TotalHoursLogged       float64    `json:"total_hours_logged"`
	BillableHoursLogged    float64    `json:"billable_hours_logged"`
	NonBillableHoursLogged float64    `json:"non_billable_hours_logged"`
	RemainingHours         float64    `json:"remaining_hours"`
	LastTimeEntry          *time.Time `json:"last_time_entry"`

	CurrentLevel    int        `json:"current_level"`
	FinalApproved   bool       `json:"final_approved"`
	FinalApprovedAt *time.Time `json:"final_approved_at"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	SatisfactionRating   *int   `json:"satisfaction_rating,omitempty"`
	SatisfactionFeedback string `json:"satisfaction_feedback,omitempty"`

	Source               models.AssignmentSource `json:"source"`
	PreviousAssignmentID string                  `json:"previous_assignment_id,omitempty"`

	ApprovalLevels []ApprovalLevelView `json:"approval_levels"`
	StatusHistory  []StatusHistoryView `json:"status_history"`
	Extensions     []ExtensionView     `json:"extensions"`
	Milestones     []MilestoneView     `json:"milestones"`
	Notes          []NoteView          `json:"notes"`
	Documents      []DocumentView      `json:"documents"`
}

type ApprovalLevelView struct {
	ID           string                `json:"id"`
	Level        int                   `json:"level"`
	ApproverID   string                `json:"approver_id"`
	ApproverName string                `json:"approver_name"`
	Status       models.ApprovalStatus `json:"status"`
	StatusName   string                `json:"status_name"`
	Comments     string                `json:"comments,omitempty"`
	DecidedAt    *time.Time            `json:"decided_at,omitempty"`
}

type StatusHistoryView struct {
	FromStatus models.AssignmentStatus `json:"from_status"`
	ToStatus   models.AssignmentStatus `json:"to_status"`
	ChangedAt  time.Time               `json:"changed_at"`
	ChangedBy  string                  `json:"changed_by"`
	Reason     string                  `json:"reason,omitempty"`
}

type ExtensionView struct {
	ID              string                 `json:"id"`
	OriginalEndDate time.Time              `json:"original_end_date"`
	NewEndDate      time.Time              `json:"new_end_date"`
	Reason          string                 `json:"reason"`
	RequesterID     string                 `json:"requester_id"`
	Status          models.ExtensionStatus `json:"status"`
	DecidedAt       *time.Time             `json:"decided_at,omitempty"`
}

type MilestoneView struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	TargetDate *time.Time             `json:"target_date"`
	ActualDate *time.Time             `json:"actual_date"`
	Status     models.MilestoneStatus `json:"status"`
}

type NoteView struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Date       time.Time `json:"date"`
	Text       string    `json:"text"`
}

type DocumentView struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploaded_by"`
	Date       time.Time `json:"date"`
}

func AssignmentConvert(rec dbmodels.Assignment) AssignmentView {
	result := AssignmentView{
		AssignmentData: AssignmentData{
			ConsultantID:      rec.ConsultantID,
			ClientID:          rec.ClientID,
			Title:             rec.Title,
			ProposedStart:     rec.ProposedStart,
			ProposedEnd:       rec.ProposedEnd,
			AllocationPercent: rec.AllocationPercent,
			WeeklyHours:       rec.WeeklyHours,
			DailyHours:        rec.DailyHours,
			Billable:          rec.Billable,
			RateType:          rec.RateType,
			ClientRate:        RateData{Amount: rec.ClientRate, Currency: rec.ClientRateCurrency},
			CostRate:          RateData{Amount: rec.CostRate, Currency: rec.CostRateCurrency},
			BudgetAllocated:   rec.BudgetAllocated,
			ExpensesAllocated: rec.ExpensesAllocated,
			EstimatedHours:    rec.EstimatedHours,
		},
		ID:                     rec.ID,
		Code:                   rec.Code,
		CreationDate:           rec.CreatedAt,
		Status:                 rec.Status,
		StatusName:             rec.Status.ToHuman(),
		ActualStart:            rec.ActualStart,
		ActualEnd:              rec.ActualEnd,
		BudgetSpent:            rec.BudgetSpent,
		BudgetRemaining:        rec.BudgetRemaining,
		ExpensesSpent:          rec.ExpensesSpent,
		TotalHoursLogged:       rec.TotalHoursLogged,
		BillableHoursLogged:    rec.BillableHoursLogged,
		NonBillableHoursLogged: rec.NonBillableHoursLogged,
		RemainingHours:         rec.RemainingHours,
		LastTimeEntry:          rec.LastTimeEntry,
		CurrentLevel:           rec.CurrentLevel,
		FinalApproved:          rec.FinalApproved,
		FinalApprovedAt:        rec.FinalApprovedAt,
		RejectionReason:        rec.RejectionReason,
		SatisfactionRating:     rec.SatisfactionRating,
		SatisfactionFeedback:   rec.SatisfactionFeedback,
		Source:                 rec.Source,
	}
	if rec.ProjectID != nil {
		result.ProjectID = *rec.ProjectID
	}
	if rec.EngagementID != nil {
		result.EngagementID = *rec.EngagementID
	}
	if rec.PreviousAssignmentID != nil {
		result.PreviousAssignmentID = *rec.PreviousAssignmentID
	}
	if rec.Consultant != nil {
		result.ConsultantName = rec.Consultant.GetFullName()
	}
	if rec.Client != nil {
		result.ClientName = rec.Client.Name
	}
	if rec.Project != nil {
		result.ProjectName = rec.Project.Name
	}
	if rec.Engagement != nil {
		result.EngagementName = rec.Engagement.Name
	}
	result.ApprovalLevels = make([]ApprovalLevelView, 0, len(rec.ApprovalLevels))
	for _, lvl := range rec.ApprovalLevels {
		result.ApprovalLevels = append(result.ApprovalLevels, ApprovalLevelConvert(lvl))
	}
	// история отображается от новых к старым
	result.StatusHistory = make([]StatusHistoryView, 0, len(rec.StatusHistory))
	for idx := len(rec.StatusHistory) - 1; idx >= 0; idx-- {
		h := rec.StatusHistory[idx]
		result.StatusHistory = append(result.StatusHistory, StatusHistoryView{
			FromStatus: h.FromStatus,
			ToStatus:   h.ToStatus,
			ChangedAt:  h.CreatedAt,
			ChangedBy:  h.ChangedBy,
			Reason:     h.Reason,
		})
	}
	result.Extensions = make([]ExtensionView, 0, len(rec.Extensions))
	for _, ext := range rec.Extensions {
		result.Extensions = append(result.Extensions, ExtensionView{
			ID:              ext.ID,
			OriginalEndDate: ext.OriginalEndDate,
			NewEndDate:      ext.NewEndDate,
			Reason:          ext.Reason,
			RequesterID:     ext.RequesterID,
			Status:          ext.Status,
			DecidedAt:       ext.DecidedAt,
		})
	}
	result.Milestones = make([]MilestoneView, 0, len(rec.Milestones))
	for _, m := range rec.Milestones {
		result.Milestones = append(result.Milestones, MilestoneView{
			ID:         m.ID,
			Name:       m.Name,
			TargetDate: m.TargetDate,
			ActualDate: m.ActualDate,
			Status:     m.Status,
		})
	}
	result.Notes = make([]NoteView, 0, len(rec.Notes))
	for idx := len(rec.Notes) - 1; idx >= 0; idx-- {
		note := rec.Notes[idx]
		view := NoteView{
			ID:       note.ID,
			AuthorID: note.AuthorID,
			Date:     note.CreatedAt,
			Text:     note.Text,
		}
		if note.Author != nil {
			view.AuthorName = note.Author.GetFullName()
		}
		result.Notes = append(result.Notes, view)
	}
	result.Documents = make([]DocumentView, 0, len(rec.Documents))
	for _, doc := range rec.Documents {
		result.Documents = append(result.Documents, DocumentView{
			ID:         doc.ID,
			FileName:   doc.FileName,
			Size:       doc.Size,
			UploadedBy: doc.UploadedBy,
			Date:       doc.CreatedAt,
		})
	}
	return result
}

func ApprovalLevelConvert(rec dbmodels.AssignmentApprovalLevel) ApprovalLevelView {
	result := ApprovalLevelView{
		ID:         rec.ID,
		Level:      rec.Level,
		ApproverID: rec.ApproverID,
		Status:     rec.Status,
		StatusName: rec.Status.ToHuman(),
		Comments:   rec.Comments,
		DecidedAt:  rec.DecidedAt,
	}
	if rec.Approver != nil {
		result.ApproverName = rec.Approver.GetFullName()
	}
	return result
}
