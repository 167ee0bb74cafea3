package view

import "github.com/spec-kit/ticket-dashboard/internal/domain"

// TotalPages returns ceil(count / rowsPerPage). Zero means the
// filtered list is empty; callers render that as a single empty page.
func TotalPages(count, rowsPerPage int) int {
	if count <= 0 || rowsPerPage <= 0 {
		return 0
	}
	return (count + rowsPerPage - 1) / rowsPerPage
}

// Paginate returns the slice [(page-1)*rowsPerPage, page*rowsPerPage)
// of the filtered list, clamped to the available range.
func Paginate(filtered []domain.Ticket, page, rowsPerPage int) []domain.Ticket {
	if rowsPerPage <= 0 {
		return []domain.Ticket{}
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * rowsPerPage
	if start >= len(filtered) {
		return []domain.Ticket{}
	}
	end := start + rowsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Pagination tracks the user's position in the filtered list.
// Invariant: Page stays within [1, max(1, totalPages)].
type Pagination struct {
	Page        int
	RowsPerPage int
}

// NewPagination starts on page 1 with the given page size.
func NewPagination(rowsPerPage int) Pagination {
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}
	return Pagination{Page: 1, RowsPerPage: rowsPerPage}
}

// SetRowsPerPage changes the page size and resets to page 1, so the
// user is never stranded past the end of the shorter list.
func (p *Pagination) SetRowsPerPage(rowsPerPage int) {
	if rowsPerPage >= 1 {
		p.RowsPerPage = rowsPerPage
	}
	p.Page = 1
}

// Clamp pulls Page back into range for the given page count.
func (p *Pagination) Clamp(totalPages int) {
	if totalPages < 1 {
		p.Page = 1
		return
	}
	if p.Page > totalPages {
		p.Page = totalPages
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

// Next advances one page, clamped to the last page.
func (p *Pagination) Next(totalPages int) {
	p.Page++
	p.Clamp(totalPages)
}

// Prev goes back one page, clamped to the first page.
func (p *Pagination) Prev() {
	p.Page--
	if p.Page < 1 {
		p.Page = 1
	}
}
