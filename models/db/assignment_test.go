package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"consulting-crm-backend/models"
)

func newTestAssignment() Assignment {
	return Assignment{
		BaseSpaceModel: BaseSpaceModel{SpaceID: "space-1"},
		Code:           "ASN-12AB34CD",
		ConsultantID:   "consultant-1",
		ClientID:       "client-1",
		Status:         models.AssignmentStatusActive,
	}
}

func TestAssignmentValidate(t *testing.T) {
	t.Run(`корректная запись`, func(t *testing.T) {
		rec := newTestAssignment()
		require.Nil(t, rec.Validate())
	})

	t.Run(`некорректный код`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.Code = "XX-123"
		require.NotNil(t, rec.Validate())
	})

	t.Run(`нет консультанта`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.ConsultantID = ""
		require.NotNil(t, rec.Validate())
	})

	t.Run(`процент загрузки вне диапазона`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.AllocationPercent = 150
		require.NotNil(t, rec.Validate())
	})

	t.Run(`оплачиваемое без типа ставки`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.Billable = true
		require.NotNil(t, rec.Validate())
		rec.RateType = models.RateTypeHourly
		require.Nil(t, rec.Validate())
	})

	t.Run(`разные валюты ставок`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.ClientRateCurrency = "RUB"
		rec.CostRateCurrency = "USD"
		require.NotNil(t, rec.Validate())
		rec.CostRateCurrency = "RUB"
		require.Nil(t, rec.Validate())
	})
}

func TestAssignmentRecalc(t *testing.T) {
	rec := newTestAssignment()
	rec.BudgetAllocated = 1000
	rec.BudgetSpent = 400
	rec.EstimatedHours = 80
	rec.TotalHoursLogged = 100
	rec.Recalc()
	require.Equal(t, float64(600), rec.BudgetRemaining)
	require.Equal(t, float64(-20), rec.RemainingHours)
}

func TestAssignmentApplyTime(t *testing.T) {
	entryDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run(`оплачиваемое время списывает бюджет`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.Billable = true
		rec.ClientRate = 100
		rec.BudgetAllocated = 1000
		err := rec.ApplyTime(8, true, entryDate)
		require.Nil(t, err)
		require.Equal(t, float64(8), rec.TotalHoursLogged)
		require.Equal(t, float64(8), rec.BillableHoursLogged)
		require.Equal(t, float64(0), rec.NonBillableHoursLogged)
		require.Equal(t, float64(800), rec.BudgetSpent)
		require.Equal(t, float64(200), rec.BudgetRemaining)
		require.Equal(t, entryDate, *rec.LastTimeEntry)
	})

	t.Run(`неоплачиваемое время бюджет не трогает`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.Billable = true
		rec.ClientRate = 100
		rec.BudgetAllocated = 1000
		err := rec.ApplyTime(8, false, entryDate)
		require.Nil(t, err)
		require.Equal(t, float64(8), rec.NonBillableHoursLogged)
		require.Equal(t, float64(0), rec.BillableHoursLogged)
		require.Equal(t, float64(0), rec.BudgetSpent)
		require.Equal(t, float64(1000), rec.BudgetRemaining)
	})

	t.Run(`без клиентской ставки списания нет`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.Billable = true
		rec.BudgetAllocated = 1000
		err := rec.ApplyTime(8, true, entryDate)
		require.Nil(t, err)
		require.Equal(t, float64(8), rec.BillableHoursLogged)
		require.Equal(t, float64(0), rec.BudgetSpent)
	})

	t.Run(`бюджет может уйти в минус`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.Billable = true
		rec.ClientRate = 100
		rec.BudgetAllocated = 500
		err := rec.ApplyTime(8, true, entryDate)
		require.Nil(t, err)
		require.Equal(t, float64(-300), rec.BudgetRemaining)
	})

	t.Run(`на неоплачиваемом назначении время всегда неоплачиваемое`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.Billable = false
		rec.ClientRate = 100
		rec.BudgetAllocated = 1000
		err := rec.ApplyTime(8, true, entryDate)
		require.Nil(t, err)
		require.Equal(t, float64(0), rec.BillableHoursLogged)
		require.Equal(t, float64(8), rec.NonBillableHoursLogged)
		require.Equal(t, float64(0), rec.BudgetSpent)
		require.Equal(t, float64(1000), rec.BudgetRemaining)
	})

	t.Run(`нулевые и отрицательные часы`, func(t *testing.T) {
		rec := newTestAssignment()
		require.NotNil(t, rec.ApplyTime(0, true, entryDate))
		require.NotNil(t, rec.ApplyTime(-1, true, entryDate))
		require.Equal(t, float64(0), rec.TotalHoursLogged)
	})
}

func TestAssignmentApplyExtension(t *testing.T) {
	originalEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	newEnd := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run(`фиксируется исходная дата и двигается плановая`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.ProposedEnd = &originalEnd
		ext := rec.ApplyExtension(newEnd, "клиент продлил контракт", "user-1")
		require.Equal(t, originalEnd, ext.OriginalEndDate)
		require.Equal(t, newEnd, ext.NewEndDate)
		require.Equal(t, models.ExtStatusPending, ext.Status)
		require.Equal(t, "user-1", ext.RequesterID)
		require.Equal(t, newEnd, *rec.ProposedEnd)
	})

	t.Run(`без плановой даты берется фактическая`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.ActualEnd = &originalEnd
		ext := rec.ApplyExtension(newEnd, "продление", "user-1")
		require.Equal(t, originalEnd, ext.OriginalEndDate)
	})
}

func TestAssignmentApprovalChain(t *testing.T) {
	t.Run(`первый несогласованный уровень`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.ApprovalLevels = []AssignmentApprovalLevel{
			{Level: 2, ApproverID: "user-2", Status: models.AStatusPending},
			{Level: 1, ApproverID: "user-1", Status: models.AStatusPending},
		}
		isLast, level := rec.GetCurrentApprovalLevel()
		require.False(t, isLast)
		require.NotNil(t, level)
		require.Equal(t, 1, level.Level)
	})

	t.Run(`последний уровень в цепочке`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.ApprovalLevels = []AssignmentApprovalLevel{
			{Level: 1, ApproverID: "user-1", Status: models.AStatusApproved},
			{Level: 2, ApproverID: "user-2", Status: models.AStatusPending},
		}
		isLast, level := rec.GetCurrentApprovalLevel()
		require.True(t, isLast)
		require.NotNil(t, level)
		require.Equal(t, 2, level.Level)
	})

	t.Run(`цепочка без ожидающих уровней`, func(t *testing.T) {
		rec := newTestAssignment()
		rec.ApprovalLevels = []AssignmentApprovalLevel{
			{Level: 1, ApproverID: "user-1", Status: models.AStatusApproved},
		}
		isLast, level := rec.GetCurrentApprovalLevel()
		require.True(t, isLast)
		require.Nil(t, level)
	})

	t.Run(`все уровни согласованы`, func(t *testing.T) {
		rec := newTestAssignment()
		require.False(t, rec.AllLevelsApproved())
		rec.ApprovalLevels = []AssignmentApprovalLevel{
			{Level: 1, Status: models.AStatusApproved},
			{Level: 2, Status: models.AStatusApproved},
		}
		require.True(t, rec.AllLevelsApproved())
		rec.ApprovalLevels[1].Status = models.AStatusSkipped
		require.False(t, rec.AllLevelsApproved())
	})
}
