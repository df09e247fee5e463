// Package pagination turns a requested page number and an item count into a
// slice range and a bounded, shifting window of page numbers to link to.
package pagination

// Default sizes used by the gallery.
const (
	DefaultPageSize   = 300
	DefaultWindowSize = 10
)

// Window describes one page of a paginated listing.
type Window struct {
	// Page is the effective 1-based page after clamping.
	Page int `json:"page"`
	// TotalPages is 0 when there are no items.
	TotalPages int `json:"totalPages"`
	// Start and End bound the items of Page: items[Start:End].
	Start int `json:"start"`
	End   int `json:"end"`
	// Pages holds the consecutive page numbers to display, in ascending order.
	Pages []int `json:"pages"`
}

// Paginate computes the Window for requestedPage. It never fails: page
// numbers are clamped into range and non-positive sizes are treated as 1.
//
// The visible window holds up to windowSize pages centered on the current
// page. Near either end it shifts to stay inside [1, TotalPages] rather than
// shrinking, so it shows min(windowSize, TotalPages) numbers in every case.
func Paginate(requestedPage, totalItems, pageSize, windowSize int) Window {
	if pageSize < 1 {
		pageSize = 1
	}
	if windowSize < 1 {
		windowSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := totalItems / pageSize
	if totalItems%pageSize != 0 {
		totalPages++
	}

	page := requestedPage
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	w := Window{
		Page:       page,
		TotalPages: totalPages,
		Pages:      []int{},
	}
	if totalPages == 0 {
		return w
	}

	w.Start = (page - 1) * pageSize
	w.End = w.Start + pageSize
	if w.End > totalItems {
		w.End = totalItems
	}

	first := page - windowSize/2
	last := first + windowSize - 1
	if first < 1 {
		last += 1 - first
		first = 1
	}
	if last > totalPages {
		first -= last - totalPages
		last = totalPages
	}
	if first < 1 {
		first = 1
	}

	w.Pages = make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		w.Pages = append(w.Pages, p)
	}
	return w
}

// Len returns the number of items on the page.
func (w Window) Len() int {
	return w.End - w.Start
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool {
	return w.Page > 1
}

// HasNext reports whether a following page exists.
func (w Window) HasNext() bool {
	return w.Page < w.TotalPages
}

// Prev returns the previous page number.
func (w Window) Prev() int {
	return w.Page - 1
}

// Next returns the following page number.
func (w Window) Next() int {
	return w.Page + 1
}
