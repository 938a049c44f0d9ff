// Package paging computes result-window offsets for the catalog search.
//
// The functions are pure. Next and Prev return the offset unchanged when the
// move would leave the valid range, so repeated presses at an edge are no-ops.
package paging

// Next returns the offset of the following window, or offset when the
// following window would start at or past the last full page.
func Next(offset, pageSize, total int) int {
	if pageSize <= 0 || offset+pageSize >= total-pageSize {
		return offset
	}
	return offset + pageSize
}

// Prev returns the offset of the preceding window, or offset when that would
// reach zero or below.
func Prev(offset, pageSize, total int) int {
	if pageSize <= 0 || offset-pageSize <= 0 {
		return offset
	}
	return offset - pageSize
}

// CanNext reports whether Next would move.
func CanNext(offset, pageSize, total int) bool {
	return Next(offset, pageSize, total) != offset
}

// CanPrev reports whether Prev would move.
func CanPrev(offset, pageSize, total int) bool {
	return Prev(offset, pageSize, total) != offset
}

// Window returns the 1-based first and last record numbers shown for offset.
// Both are zero when the window is empty.
func Window(offset, pageSize, total int) (first, last int) {
	if total <= 0 || pageSize <= 0 || offset >= total || offset < 0 {
		return 0, 0
	}
	return offset + 1, min(offset+pageSize, total)
}

// PageNumber returns the 1-based page for offset and the page count.
func PageNumber(offset, pageSize, total int) (page, pages int) {
	if pageSize <= 0 || total <= 0 {
		return 0, 0
	}
	pages = (total + pageSize - 1) / pageSize
	page = offset/pageSize + 1
	return min(page, pages), pages
}
