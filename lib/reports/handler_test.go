package reportshandler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcMargin(t *testing.T) {
	t.Run(`обычный расчет`, func(t *testing.T) {
		margin, marginPct := CalcMargin(1000, 600)
		require.Equal(t, float64(400), margin)
		require.Equal(t, float64(40), marginPct)
	})

	t.Run(`нулевая выручка`, func(t *testing.T) {
		margin, marginPct := CalcMargin(0, 600)
		require.Equal(t, float64(-600), margin)
		require.Equal(t, float64(0), marginPct)
	})

	t.Run(`убыточный месяц`, func(t *testing.T) {
		margin, marginPct := CalcMargin(500, 750)
		require.Equal(t, float64(-250), margin)
		require.Equal(t, float64(-50), marginPct)
	})

	t.Run(`нулевая себестоимость`, func(t *testing.T) {
		margin, marginPct := CalcMargin(500, 0)
		require.Equal(t, float64(500), margin)
		require.Equal(t, float64(100), marginPct)
	})
}
