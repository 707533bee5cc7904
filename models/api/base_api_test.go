package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginationGetPage(t *testing.T) {
	t.Run(`значения по умолчанию`, func(t *testing.T) {
		page, limit := Pagination{}.GetPage(100)
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
	})

	t.Run(`заданные значения`, func(t *testing.T) {
		page, limit := Pagination{Page: 3, Limit: 50}.GetPage(100)
		require.Equal(t, 3, page)
		require.Equal(t, 50, limit)
	})

	t.Run(`лимит упирается в потолок`, func(t *testing.T) {
		page, limit := Pagination{Page: 1, Limit: 500}.GetPage(100)
		require.Equal(t, 1, page)
		require.Equal(t, 100, limit)
	})

	t.Run(`нулевой потолок не ограничивает`, func(t *testing.T) {
		_, limit := Pagination{Limit: 500}.GetPage(0)
		require.Equal(t, 500, limit)
	})

	t.Run(`отрицательные значения`, func(t *testing.T) {
		page, limit := Pagination{Page: -1, Limit: -5}.GetPage(100)
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
	})
}
