package assignmenthandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	assignmentstore "consulting-crm-backend/lib/assignment/store"
)

type allocationStoreStub struct {
	assignmentstore.Provider
	total float64
}

func (s allocationStoreStub) SumAllocation(spaceID, consultantID string) (float64, error) {
	return s.total, nil
}

func TestCheckAllocation(t *testing.T) {
	t.Run(`перегрузка не блокирует назначение`, func(t *testing.T) {
		h := impl{store: allocationStoreStub{total: 60}}
		require.Nil(t, h.checkAllocation("space-1", "consultant-1", 50))
		require.Nil(t, h.checkAllocation("space-1", "consultant-1", 100))
	})

	t.Run(`признак перегрузки`, func(t *testing.T) {
		require.False(t, isOverAllocated(60, 40))
		require.True(t, isOverAllocated(60, 50))
		require.True(t, isOverAllocated(120, 0))
	})
}
