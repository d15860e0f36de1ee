package dashboard

import (
	"fmt"
	"testing"

	"trade-dashboard-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func nTrades(n int) []models.Trade {
	trades := make([]models.Trade, n)
	for i := range trades {
		trades[i].TradeID = fmt.Sprintf("T-%d", i+1)
	}
	return trades
}

func TestPaginate(t *testing.T) {
	testCases := []struct {
		name           string
		total          int
		page           int
		size           int
		expectedLen    int
		expectedPage   int
		expectedPages  int
		expectedFirst  string
	}{
		{name: "25 trades size 10 page 1", total: 25, page: 1, size: 10, expectedLen: 10, expectedPage: 1, expectedPages: 3, expectedFirst: "T-1"},
		{name: "25 trades size 10 page 3", total: 25, page: 3, size: 10, expectedLen: 5, expectedPage: 3, expectedPages: 3, expectedFirst: "T-21"},
		{name: "Exact multiple", total: 20, page: 2, size: 10, expectedLen: 10, expectedPage: 2, expectedPages: 2, expectedFirst: "T-11"},
		{name: "Page beyond range clamps to last", total: 25, page: 9, size: 10, expectedLen: 5, expectedPage: 3, expectedPages: 3, expectedFirst: "T-21"},
		{name: "Page below range clamps to first", total: 25, page: 0, size: 10, expectedLen: 10, expectedPage: 1, expectedPages: 3, expectedFirst: "T-1"},
		{name: "Single page", total: 4, page: 1, size: 10, expectedLen: 4, expectedPage: 1, expectedPages: 1, expectedFirst: "T-1"},
		{name: "Empty set", total: 0, page: 1, size: 10, expectedLen: 0, expectedPage: 1, expectedPages: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slice, page := Paginate(nTrades(tc.total), tc.page, tc.size)
			assert.Len(t, slice, tc.expectedLen)
			assert.Equal(t, tc.expectedPage, page.Number)
			assert.Equal(t, tc.expectedPages, page.TotalPages)
			assert.Equal(t, tc.total, page.TotalItems)
			if tc.expectedLen > 0 {
				assert.Equal(t, tc.expectedFirst, slice[0].TradeID)
			}
		})
	}
}

func TestPaginateLastPageBounds(t *testing.T) {
	// The last page always holds between 1 and size items.
	for total := 1; total <= 35; total++ {
		_, page := Paginate(nTrades(total), 1, 10)
		last, _ := Paginate(nTrades(total), page.TotalPages, 10)
		assert.GreaterOrEqual(t, len(last), 1)
		assert.LessOrEqual(t, len(last), 10)
	}
}

func TestPageBoundaries(t *testing.T) {
	_, first := Paginate(nTrades(25), 1, 10)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	_, last := Paginate(nTrades(25), 3, 10)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())

	_, only := Paginate(nTrades(5), 1, 10)
	assert.False(t, only.HasPrev())
	assert.False(t, only.HasNext())
}

func TestPageWindow(t *testing.T) {
	testCases := []struct {
		name       string
		totalPages int
		current    int
		expected   []int
	}{
		{name: "All pages fit", totalPages: 5, current: 3, expected: []int{1, 2, 3, 4, 5}},
		{name: "Exactly max", totalPages: 10, current: 10, expected: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{name: "Centered window", totalPages: 30, current: 15, expected: []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}},
		{name: "Clamped at start", totalPages: 30, current: 2, expected: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{name: "Clamped at end", totalPages: 30, current: 29, expected: []int{21, 22, 23, 24, 25, 26, 27, 28, 29, 30}},
		{name: "No pages", totalPages: 0, current: 1, expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PageWindow(tc.totalPages, tc.current, MaxPageButtons))
		})
	}
}

func TestPageWindowNeverExceedsMax(t *testing.T) {
	for totalPages := 1; totalPages <= 50; totalPages++ {
		for current := 1; current <= totalPages; current++ {
			window := PageWindow(totalPages, current, MaxPageButtons)
			assert.LessOrEqual(t, len(window), MaxPageButtons)
			assert.Contains(t, window, current)
		}
	}
}
