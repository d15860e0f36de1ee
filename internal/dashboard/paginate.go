package dashboard

import "trade-dashboard-go/internal/models"

// MaxPageButtons is the upper bound on visible page-number controls.
const MaxPageButtons = 10

// Page describes the resolved pagination state for the filtered trade set.
type Page struct {
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate slices the filtered trades with standard offset/limit semantics.
// The requested page is clamped to [1, totalPages]; an empty set yields
// page 1 of 0 with an empty slice.
func Paginate(trades []models.Trade, page, size int) ([]models.Trade, Page) {
	if size < 1 {
		size = 1
	}
	n := len(trades)
	totalPages := (n + size - 1) / size

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	resolved := Page{
		Number:     page,
		Size:       size,
		TotalItems: n,
		TotalPages: totalPages,
	}

	if n == 0 {
		return nil, resolved
	}

	offset := (page - 1) * size
	end := offset + size
	if end > n {
		end = n
	}
	return trades[offset:end], resolved
}

// PageWindow returns the page numbers to render as buttons: all pages when
// they fit in maxVisible, otherwise a window centered on the current page and
// clamped so it never runs past the first or last page.
func PageWindow(totalPages, current, maxVisible int) []int {
	if totalPages < 1 {
		return nil
	}
	if maxVisible < 1 {
		maxVisible = 1
	}

	start := 1
	end := totalPages
	if totalPages > maxVisible {
		start = current - maxVisible/2
		if start < 1 {
			start = 1
		}
		end = start + maxVisible - 1
		if end > totalPages {
			end = totalPages
			start = end - maxVisible + 1
		}
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
