package domain

// Pagination describes where a page sits inside a filtered task list.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
	FirstPage   int   `json:"first_page"`
	LastPage    int   `json:"last_page"`
	Total       int64 `json:"total"`
}

// NewPagination computes page links for total items split into pages of limit.
// The last page is never below the first one, even for an empty list.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	last := int((total + int64(limit) - 1) / int64(limit))
	if last < 1 {
		last = 1
	}

	p := Pagination{
		CurrentPage: page,
		FirstPage:   1,
		LastPage:    last,
		Total:       total,
	}
	if page < last {
		next := page + 1
		p.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

// TaskPage is one page of a task list.
type TaskPage struct {
	Tasks      []Task
	Pagination Pagination
}
