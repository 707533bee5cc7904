package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignmentStatus(t *testing.T) {
	t.Run(`допустимые переходы`, func(t *testing.T) {
		require.True(t, AssignmentStatusProposed.IsAllowChange(AssignmentStatusPendingApproval))
		require.True(t, AssignmentStatusProposed.IsAllowChange(AssignmentStatusCancelled))
		require.True(t, AssignmentStatusPendingApproval.IsAllowChange(AssignmentStatusConfirmed))
		require.True(t, AssignmentStatusConfirmed.IsAllowChange(AssignmentStatusActive))
		require.True(t, AssignmentStatusActive.IsAllowChange(AssignmentStatusOnHold))
		require.True(t, AssignmentStatusActive.IsAllowChange(AssignmentStatusCompleted))
		require.True(t, AssignmentStatusActive.IsAllowChange(AssignmentStatusTerminated))
		require.True(t, AssignmentStatusOnHold.IsAllowChange(AssignmentStatusActive))
		require.True(t, AssignmentStatusOnHold.IsAllowChange(AssignmentStatusTerminated))
	})

	t.Run(`недопустимые переходы`, func(t *testing.T) {
		require.False(t, AssignmentStatusProposed.IsAllowChange(AssignmentStatusActive))
		require.False(t, AssignmentStatusProposed.IsAllowChange(AssignmentStatusConfirmed))
		require.False(t, AssignmentStatusPendingApproval.IsAllowChange(AssignmentStatusActive))
		require.False(t, AssignmentStatusConfirmed.IsAllowChange(AssignmentStatusProposed))
		require.False(t, AssignmentStatusActive.IsAllowChange(AssignmentStatusCancelled))
		require.False(t, AssignmentStatusOnHold.IsAllowChange(AssignmentStatusCompleted))
		require.False(t, AssignmentStatusCompleted.IsAllowChange(AssignmentStatusActive))
		require.False(t, AssignmentStatusCancelled.IsAllowChange(AssignmentStatusProposed))
		require.False(t, AssignmentStatusTerminated.IsAllowChange(AssignmentStatusActive))
	})

	t.Run(`терминальные статусы`, func(t *testing.T) {
		require.True(t, AssignmentStatusCompleted.IsTerminal())
		require.True(t, AssignmentStatusCancelled.IsTerminal())
		require.True(t, AssignmentStatusTerminated.IsTerminal())
		require.False(t, AssignmentStatusProposed.IsTerminal())
		require.False(t, AssignmentStatusActive.IsTerminal())
		require.False(t, AssignmentStatusOnHold.IsTerminal())
	})

	t.Run(`валидация статуса`, func(t *testing.T) {
		require.Nil(t, AssignmentStatusActive.Validate())
		require.NotNil(t, AssignmentStatus("unknown").Validate())
	})
}

func TestRateType(t *testing.T) {
	require.Nil(t, RateTypeHourly.Validate())
	require.Nil(t, RateTypeDaily.Validate())
	require.Nil(t, RateTypeFixed.Validate())
	require.NotNil(t, RateType("monthly").Validate())
}
