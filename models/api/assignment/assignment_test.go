package assignmentapimodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"consulting-crm-backend/models"
)

func TestAssignmentDataValidate(t *testing.T) {
	valid := AssignmentData{
		ConsultantID: "consultant-1",
		ClientID:     "client-1",
	}

	t.Run(`корректные данные`, func(t *testing.T) {
		require.Nil(t, valid.Validate())
	})

	t.Run(`обязательные ссылки`, func(t *testing.T) {
		data := valid
		data.ConsultantID = ""
		require.NotNil(t, data.Validate())
		data = valid
		data.ClientID = ""
		require.NotNil(t, data.Validate())
	})

	t.Run(`оплачиваемое требует тип ставки`, func(t *testing.T) {
		data := valid
		data.Billable = true
		require.NotNil(t, data.Validate())
		data.RateType = models.RateTypeDaily
		require.Nil(t, data.Validate())
	})

	t.Run(`валюты ставок`, func(t *testing.T) {
		data := valid
		data.ClientRate = RateData{Amount: 100, Currency: "EUR"}
		data.CostRate = RateData{Amount: 60, Currency: "RUB"}
		require.NotNil(t, data.Validate())
		data.CostRate.Currency = "EUR"
		require.Nil(t, data.Validate())
	})

	t.Run(`даты`, func(t *testing.T) {
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, -1, 0)
		data := valid
		data.ProposedStart = &start
		data.ProposedEnd = &end
		require.NotNil(t, data.Validate())
	})
}

func TestApprovalLevelsValidate(t *testing.T) {
	t.Run(`корректная цепочка`, func(t *testing.T) {
		levels := ApprovalLevels{ApprovalLevels: []ApprovalLevelData{
			{Level: 1, ApproverID: "user-1"},
			{Level: 2, ApproverID: "user-2"},
		}}
		require.Nil(t, levels.Validate())
	})

	t.Run(`дубль уровня`, func(t *testing.T) {
		levels := ApprovalLevels{ApprovalLevels: []ApprovalLevelData{
			{Level: 1, ApproverID: "user-1"},
			{Level: 1, ApproverID: "user-2"},
		}}
		require.NotNil(t, levels.Validate())
	})

	t.Run(`дубль согласующего`, func(t *testing.T) {
		levels := ApprovalLevels{ApprovalLevels: []ApprovalLevelData{
			{Level: 1, ApproverID: "user-1"},
			{Level: 2, ApproverID: "user-1"},
		}}
		require.NotNil(t, levels.Validate())
	})

	t.Run(`нулевой уровень`, func(t *testing.T) {
		levels := ApprovalLevels{ApprovalLevels: []ApprovalLevelData{
			{Level: 0, ApproverID: "user-1"},
		}}
		require.NotNil(t, levels.Validate())
	})

	t.Run(`пустой согласующий`, func(t *testing.T) {
		levels := ApprovalLevels{ApprovalLevels: []ApprovalLevelData{
			{Level: 1},
		}}
		require.NotNil(t, levels.Validate())
	})
}

func TestAssignmentEditDataValidate(t *testing.T) {
	require.Nil(t, AssignmentEditData{Title: "Старший консультант"}.Validate())
	require.NotNil(t, AssignmentEditData{AllocationPercent: 120}.Validate())

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	require.NotNil(t, AssignmentEditData{ProposedStart: &start, ProposedEnd: &end}.Validate())
}

func TestLogTimeDataValidate(t *testing.T) {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	require.Nil(t, LogTimeData{Hours: 4, Date: &date}.Validate())
	require.NotNil(t, LogTimeData{Hours: 0, Date: &date}.Validate())
	require.NotNil(t, LogTimeData{Hours: 4}.Validate())
}

func TestCompleteDataValidate(t *testing.T) {
	rating := 5
	require.Nil(t, CompleteData{Rating: &rating}.Validate())
	require.Nil(t, CompleteData{}.Validate())
	bad := 6
	require.NotNil(t, CompleteData{Rating: &bad}.Validate())
	bad = 0
	require.NotNil(t, CompleteData{Rating: &bad}.Validate())
}
